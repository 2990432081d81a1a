// Package postgres implements the repository contracts over GORM for
// deployments that need submissions to survive a restart.
package postgres

import (
	"gorm.io/gorm"

	"github.com/privacyweave/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every entity kind.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Inquiry{},
		&models.JobListing{},
		&models.JobApplication{},
		&models.ChatConversation{},
		&models.ChatMessage{},
	)
}
