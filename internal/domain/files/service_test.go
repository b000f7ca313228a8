package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
)

type mockFileRepo struct {
	mock.Mock
}

func (m *mockFileRepo) Create(ctx context.Context, f *FileAsset) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id int64) (*FileAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FileAsset), args.Error(1)
}

func (m *mockFileRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFileRepo) ListWithOwners(ctx context.Context) ([]*FileAssetWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*FileAssetWithOwner), args.Error(1)
}

func (m *mockFileRepo) ListByUser(ctx context.Context, userID int64) ([]*FileAsset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*FileAsset), args.Error(1)
}

func (m *mockFileRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeStore keeps blobs in memory so tests can assert what is retained.
type fakeStore struct {
	blobs     map[string][]byte
	saveErr   error
	removeErr error
	saves     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}}
}

func (f *fakeStore) Save(name string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.saves++
	path := fmt.Sprintf("blob-%d-%s", f.saves, name)
	f.blobs[path] = data
	return path, nil
}

func (f *fakeStore) Open(path string) (io.ReadCloser, error) {
	data, ok := f.blobs[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Remove(path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.blobs, path)
	return nil
}

const testMaxSize = 10 * 1024 * 1024

func TestUpload_Success(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *FileAsset) bool {
		return f.Title == "Calculus Notes" && f.Category == "math" &&
			f.FileType == TypePDF && f.UserID == 1
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*FileAsset).ID = 11
	})

	asset, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"notes.pdf", 4, strings.NewReader("data"), UploadInput{
			Title: " Calculus Notes ", Category: " math ",
		})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), asset.ID)
	assert.Len(t, store.blobs, 1)
}

func TestUpload_MissingTitleDiscardsBlob(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	_, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"notes.pdf", 4, strings.NewReader("data"), UploadInput{Category: "math"})

	assert.ErrorIs(t, err, ErrTitleCategoryMissing)
	assert.Empty(t, store.blobs)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpload_MissingCategoryDiscardsBlob(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	_, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"notes.pdf", 4, strings.NewReader("data"), UploadInput{Title: "Notes"})

	assert.ErrorIs(t, err, ErrTitleCategoryMissing)
	assert.Empty(t, store.blobs)
}

func TestUpload_InsertFailureDiscardsBlob(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

	_, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"notes.pdf", 4, strings.NewReader("data"), UploadInput{Title: "Notes", Category: "math"})

	assert.Error(t, err)
	assert.Empty(t, store.blobs)
}

func TestUpload_BlobWriteFailureCreatesNoRow(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	store.saveErr = fmt.Errorf("disk full")
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	_, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"notes.pdf", 4, strings.NewReader("data"), UploadInput{Title: "Notes", Category: "math"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpload_TooLarge(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, 10, zap.NewNop())

	_, err := svc.Upload(context.Background(), auth.Identity{ID: 1},
		"big.pdf", 11, strings.NewReader("x"), UploadInput{Title: "Big", Category: "math"})

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, store.blobs)
}

func TestDownload_Success(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	path, _ := store.Save("notes.pdf", strings.NewReader("content"))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{
		ID: 3, UserID: 1, FileName: "notes.pdf", FilePath: path, FileSize: 7,
	}, nil)

	asset, blob, err := svc.Download(context.Background(), 3)
	assert.NoError(t, err)
	defer blob.Close()

	data, _ := io.ReadAll(blob)
	assert.Equal(t, "content", string(data))
	assert.Equal(t, "notes.pdf", asset.FileName)
}

func TestDownload_NotFound(t *testing.T) {
	repo := new(mockFileRepo)
	svc := NewService(repo, newFakeStore(), testMaxSize, zap.NewNop())

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, ErrFileNotFound)

	_, _, err := svc.Download(context.Background(), 99)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDelete_OwnerRemovesRowAndBlob(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	path, _ := store.Save("notes.pdf", strings.NewReader("content"))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{ID: 3, UserID: 1, FilePath: path}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := svc.Delete(context.Background(), auth.Identity{ID: 1}, 3)

	assert.NoError(t, err)
	assert.Empty(t, store.blobs)
}

func TestDelete_NotOwner(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	path, _ := store.Save("notes.pdf", strings.NewReader("content"))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{ID: 3, UserID: 2, FilePath: path}, nil)

	err := svc.Delete(context.Background(), auth.Identity{ID: 1}, 3)

	assert.ErrorIs(t, err, ErrNotFileOwner)
	assert.Len(t, store.blobs, 1)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_AdminOverridesOwnership(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	path, _ := store.Save("notes.pdf", strings.NewReader("content"))
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{ID: 3, UserID: 2, FilePath: path}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := svc.Delete(context.Background(), auth.Identity{ID: 9, IsAdmin: true}, 3)
	assert.NoError(t, err)
}

func TestDelete_SecondDeleteNotFound(t *testing.T) {
	repo := new(mockFileRepo)
	svc := NewService(repo, newFakeStore(), testMaxSize, zap.NewNop())

	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, ErrFileNotFound)

	err := svc.Delete(context.Background(), auth.Identity{ID: 1}, 3)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDelete_BlobRemovalFailureStillSucceeds(t *testing.T) {
	repo := new(mockFileRepo)
	store := newFakeStore()
	svc := NewService(repo, store, testMaxSize, zap.NewNop())

	path, _ := store.Save("notes.pdf", strings.NewReader("content"))
	store.removeErr = fmt.Errorf("permission denied")
	repo.On("GetByID", mock.Anything, int64(3)).Return(&FileAsset{ID: 3, UserID: 1, FilePath: path}, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	// row deletion wins; the orphaned blob is a logged, accepted limitation
	err := svc.Delete(context.Background(), auth.Identity{ID: 1}, 3)
	assert.NoError(t, err)
}
