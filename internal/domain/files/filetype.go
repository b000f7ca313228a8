package files

import (
	"path/filepath"
	"strings"
)

type FileType string

const (
	TypePDF      FileType = "pdf"
	TypeImage    FileType = "image"
	TypeDocument FileType = "document"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeArchive  FileType = "archive"
	TypeCode     FileType = "code"
	TypeOther    FileType = "other"
)

var extensionTypes = map[string]FileType{
	".pdf":  TypePDF,
	".jpg":  TypeImage,
	".jpeg": TypeImage,
	".png":  TypeImage,
	".gif":  TypeImage,
	".bmp":  TypeImage,
	".webp": TypeImage,
	".doc":  TypeDocument,
	".docx": TypeDocument,
	".txt":  TypeDocument,
	".rtf":  TypeDocument,
	".mp4":  TypeVideo,
	".avi":  TypeVideo,
	".mov":  TypeVideo,
	".wmv":  TypeVideo,
	".mp3":  TypeAudio,
	".wav":  TypeAudio,
	".ogg":  TypeAudio,
	".m4a":  TypeAudio,
	".zip":  TypeArchive,
	".rar":  TypeArchive,
	".7z":   TypeArchive,
	".tar":  TypeArchive,
	".gz":   TypeArchive,
	".js":   TypeCode,
	".py":   TypeCode,
	".java": TypeCode,
	".cpp":  TypeCode,
	".c":    TypeCode,
	".html": TypeCode,
	".css":  TypeCode,
}

// Classify derives the file type from the last extension of the
// original name, case-insensitively. Unknown extensions are "other".
func Classify(filename string) FileType {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeOther
}
