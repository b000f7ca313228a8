package auth

import "time"

// User is the account row. Accounts are never deleted in-app; the
// is_admin flag is only ever set by the seed command.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username"`
	Name         string    `gorm:"column:name" json:"name"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	IsAdmin      bool      `gorm:"column:is_admin" json:"is_admin"`
	ProfileImage string    `gorm:"column:profile_image" json:"profile_image,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Identity is the per-request projection of the acting user attached
// to the request context by the auth middleware.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
}

// CanMutate is the ownership rule for deleting messages and files:
// admins may act on anything, everyone else only on what they own.
func (i Identity) CanMutate(ownerID int64) bool {
	return i.IsAdmin || i.ID == ownerID
}

func identityOf(u *User) Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		IsAdmin:  u.IsAdmin,
	}
}
