package models

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Name     string  `gorm:"size:255" json:"name"`
	Email    string  `gorm:"unique;not null;size:255" json:"email"`
	Login    string  `gorm:"unique;not null;index;size:255" json:"login"`
	Password string  `gorm:"size:255" json:"-"` // SHA-256 hex digest, or legacy plaintext until first login
	Role     Role    `gorm:"size:50" json:"role"`
	Videos   []Video `gorm:"many2many:video_user_association;" json:"-"`
}
