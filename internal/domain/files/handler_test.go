package files

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
)

func newFilesRouter(repo Repository, store *fakeStore, actor auth.Identity) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextUserKey, actor)
	})
	h := NewHandler(NewService(repo, store, testMaxSize, zap.NewNop()))
	g := router.Group("/")
	RegisterRoutes(g, h)
	return router
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadEndpoint_Created(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*FileAsset).ID = 11
	})
	router := newFilesRouter(repo, store, auth.Identity{ID: 1})

	body, contentType := multipartUpload(t, map[string]string{
		"title": "Calculus Notes", "category": "math",
	}, "notes.pdf", []byte("data"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"file_id":11`)
}

func TestUploadEndpoint_MissingTitle(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	router := newFilesRouter(repo, store, auth.Identity{ID: 1})

	body, contentType := multipartUpload(t, map[string]string{
		"category": "math",
	}, "notes.pdf", []byte("data"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Empty(t, store.blobs)
}

func TestUploadEndpoint_NoFile(t *testing.T) {
	repo := new(mockFileRepo)
	router := newFilesRouter(repo, newFakeStore(), auth.Identity{ID: 1})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Notes")
	_ = mw.WriteField("category", "math")
	_ = mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadEndpoint_StreamsBlob(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	path, _ := store.Save("notes.pdf", bytes.NewReader([]byte("content")))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{
		ID: 3, UserID: 1, FileName: "notes.pdf", FilePath: path, FileSize: 7,
	}, nil)
	router := newFilesRouter(repo, store, auth.Identity{ID: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/download/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "notes.pdf")
}

func TestListEndpoint_EmptyLibraryIsArray(t *testing.T) {
	repo := new(mockFileRepo)
	repo.On("ListWithOwners", mock.Anything).Return(nil, nil)
	router := newFilesRouter(repo, newFakeStore(), auth.Identity{ID: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
	assert.NotContains(t, w.Body.String(), `"data":null`)
}

func TestDownloadEndpoint_QuotedFilename(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	name := `my "best" notes.pdf`
	path, _ := store.Save(name, bytes.NewReader([]byte("content")))
	repo.On("GetByID", mock.Anything, int64(4)).Return(&FileAsset{
		ID: 4, UserID: 1, FileName: name, FilePath: path, FileSize: 7,
	}, nil)
	router := newFilesRouter(repo, store, auth.Identity{ID: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/download/4", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	assert.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, name, params["filename"])
}

func TestDownloadEndpoint_NotFound(t *testing.T) {
	repo := new(mockFileRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, ErrFileNotFound)
	router := newFilesRouter(repo, newFakeStore(), auth.Identity{ID: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/download/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpoint_Forbidden(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	path, _ := store.Save("notes.pdf", bytes.NewReader([]byte("content")))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{ID: 3, UserID: 2, FilePath: path}, nil)
	router := newFilesRouter(repo, store, auth.Identity{ID: 1})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/files/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
