package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;type:text;uniqueIndex" json:"username"`
	Email     string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	Name      string    `gorm:"column:name;type:text" json:"name"`
	Password  string    `gorm:"column:password;type:text" json:"-"`
	Role      UserRole  `gorm:"column:role;type:text" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
