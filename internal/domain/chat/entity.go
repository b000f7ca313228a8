package chat

import "time"

// Message is a single entry in the shared room. Ownership never
// changes after creation.
type Message struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Body      string    `gorm:"column:message" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

// MessageWithAuthor is the list projection joined with the author row.
// The is_admin flag lets clients tag admin messages.
type MessageWithAuthor struct {
	Message
	Username      string `gorm:"column:username" json:"username"`
	AuthorIsAdmin bool   `gorm:"column:is_admin" json:"is_admin"`
}
