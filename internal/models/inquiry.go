package models

import "time"

// Inquiry is a demo-request submitted through the contact form.
type Inquiry struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"column:first_name;type:text" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:text" json:"last_name"`
	Email     string    `gorm:"column:email;type:text" json:"email"`
	Company   string    `gorm:"column:company;type:text" json:"company"`
	Industry  string    `gorm:"column:industry;type:text" json:"industry"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Inquiry) TableName() string { return "inquiries" }
