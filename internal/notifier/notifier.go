// Package notifier delivers new-submission notifications to the team
// mailbox. Delivery is best-effort: callers log failures and carry on, a
// lost email never fails the request that triggered it.
package notifier

import (
	"context"

	"github.com/privacyweave/backend/internal/models"
)

type Notifier interface {
	InquiryReceived(ctx context.Context, inq *models.Inquiry) error
	ApplicationReceived(ctx context.Context, app *models.JobApplication) error
}

// Nop is used when no mail transport is configured.
type Nop struct{}

func (Nop) InquiryReceived(context.Context, *models.Inquiry) error { return nil }
func (Nop) ApplicationReceived(context.Context, *models.JobApplication) error { return nil }
