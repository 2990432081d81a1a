package notifier

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/privacyweave/backend/internal/models"
)

// Gmail sends notifications through the Gmail API on behalf of the
// configured sender account.
type Gmail struct {
	svc        *gmail.Service
	from       string
	recipients []string
}

func NewGmail(svc *gmail.Service, from string, recipients []string) *Gmail {
	return &Gmail{svc: svc, from: from, recipients: recipients}
}

func (g *Gmail) InquiryReceived(ctx context.Context, inq *models.Inquiry) error {
	subject := fmt.Sprintf("New Demo Request: %s", inq.Company)
	body := fmt.Sprintf(
		"New demo request received:\n\n"+
			"First Name: %s\nLast Name: %s\nEmail: %s\nCompany: %s\nIndustry: %s\n\n"+
			"Message:\n%s\n\nSubmitted on: %s\n",
		inq.FirstName, inq.LastName, inq.Email, inq.Company, inq.Industry,
		inq.Message, inq.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	)
	return g.send(ctx, subject, body)
}

func (g *Gmail) ApplicationReceived(ctx context.Context, app *models.JobApplication) error {
	message := "No cover letter provided"
	if app.Message != nil && *app.Message != "" {
		message = *app.Message
	}
	resume := "Not provided"
	if app.ResumePath != nil && *app.ResumePath != "" {
		resume = *app.ResumePath
	}

	subject := fmt.Sprintf("New Career Application: %s", app.Position)
	body := fmt.Sprintf(
		"New job application received:\n\n"+
			"Full Name: %s\nEmail: %s\nPhone: %s\nPosition: %s\nExperience: %s\n\n"+
			"Cover letter:\n%s\n\nResume: %s\n\nSubmitted on: %s\n",
		app.FullName, app.Email, app.Phone, app.Position, app.Experience,
		message, resume, app.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	)
	return g.send(ctx, subject, body)
}

// send builds a minimal RFC 822 message and submits it as the
// authenticated user.
func (g *Gmail) send(ctx context.Context, subject, body string) error {
	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		g.from, strings.Join(g.recipients, ", "), subject, body,
	)
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}

	_, err := g.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	return err
}
