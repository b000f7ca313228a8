package files

import "time"

// FileAsset is an uploaded study-material file: the row half of a
// row + blob pair. FilePath keys the blob in the store and never
// leaves the server.
type FileAsset struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"column:user_id" json:"user_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Category    string    `gorm:"column:category" json:"category"`
	FileName    string    `gorm:"column:file_name" json:"file_name"`
	FilePath    string    `gorm:"column:file_path" json:"-"`
	FileType    FileType  `gorm:"column:file_type" json:"file_type"`
	FileSize    int64     `gorm:"column:file_size" json:"file_size"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (FileAsset) TableName() string { return "files" }

// FileAssetWithOwner is the list projection joined with the owner row.
type FileAssetWithOwner struct {
	FileAsset
	Username string `gorm:"column:username" json:"username"`
}
