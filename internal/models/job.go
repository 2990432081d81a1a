package models

import "time"

// JobListing is an open position published on the careers page.
type JobListing struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"column:title;type:text" json:"title"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Requirements string    `gorm:"column:requirements;type:text" json:"requirements"`
	Type         string    `gorm:"column:type;type:text" json:"type"` // Full-time, Part-time, Contract
	Location     string    `gorm:"column:location;type:text" json:"location"`
	Experience   string    `gorm:"column:experience;type:text" json:"experience"`
	IsActive     bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (JobListing) TableName() string { return "job_listings" }

// JobApplication is a candidate submission, filed either through the
// careers form or derived from a chatbot transcript. ResumePath is the
// only field mutated after creation.
type JobApplication struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName   string    `gorm:"column:full_name;type:text" json:"full_name"`
	Email      string    `gorm:"column:email;type:text" json:"email"`
	Phone      string    `gorm:"column:phone;type:text" json:"phone"`
	Position   string    `gorm:"column:position;type:text" json:"position"`
	Experience string    `gorm:"column:experience;type:text" json:"experience"`
	Message    *string   `gorm:"column:message;type:text" json:"message,omitempty"`
	ResumePath *string   `gorm:"column:resume_path;type:text" json:"resume_path,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (JobApplication) TableName() string { return "job_applications" }
