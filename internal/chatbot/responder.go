// Package chatbot implements the scripted website assistant. There is no
// language model behind it: an inbound message is classified by an ordered
// list of keyword rules and answered with canned text. The only dynamic
// piece is the careers answer, which enumerates the active job listings.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/privacyweave/backend/internal/models"
)

type Intent string

const (
	IntentCareer  Intent = "career"
	IntentCompany Intent = "company"
	IntentService Intent = "service"
	IntentApply   Intent = "apply"
	IntentGeneral Intent = "general"
)

// ListingSource is the one lookup the responder performs. It is satisfied
// by repositories.JobListingRepository.
type ListingSource interface {
	ListActive(ctx context.Context) ([]models.JobListing, error)
}

// Reply is the responder's output for a single message.
type Reply struct {
	Intent Intent
	Text   string
}

type rule struct {
	intent   Intent
	keywords []string
	respond  func(ctx context.Context) (string, error)
}

type Responder struct {
	rules []rule
}

// New builds the rule chain. Rule order is part of the contract: the first
// rule whose keyword set matches wins, so "I want to apply for a job" is a
// career question, not an apply request.
func New(listings ListingSource) *Responder {
	fixed := func(text string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) { return text, nil }
	}

	return &Responder{rules: []rule{
		{
			intent:   IntentCareer,
			keywords: []string{"job", "career", "position", "work", "employment", "application"},
			respond: func(ctx context.Context) (string, error) {
				active, err := listings.ListActive(ctx)
				if err != nil {
					return "", err
				}
				if len(active) == 0 {
					return talentPoolText, nil
				}
				return careerReply(active), nil
			},
		},
		{
			intent:   IntentCompany,
			keywords: []string{"company", "about", "privacyweave", "who are you"},
			respond:  fixed(companyText),
		},
		{
			intent:   IntentService,
			keywords: []string{"service", "product", "offering", "solution", "what do you do"},
			respond:  fixed(servicesText),
		},
		{
			intent:   IntentApply,
			keywords: []string{"apply", "submit", "resume", "cv"},
			respond:  fixed(applyPromptText),
		},
	}}
}

// Classify returns the intent of a message without building the reply.
// Matching is a case-insensitive substring test, first rule wins.
func (r *Responder) Classify(content string) Intent {
	lowered := strings.ToLower(content)
	for _, ru := range r.rules {
		for _, kw := range ru.keywords {
			if strings.Contains(lowered, kw) {
				return ru.intent
			}
		}
	}
	return IntentGeneral
}

// Respond maps a message to the bot's reply. It never fails: if the
// listing lookup errors, the visitor gets the generic apply prompt
// instead of an error.
func (r *Responder) Respond(ctx context.Context, content string) Reply {
	lowered := strings.ToLower(content)
	for _, ru := range r.rules {
		for _, kw := range ru.keywords {
			if !strings.Contains(lowered, kw) {
				continue
			}
			text, err := ru.respond(ctx)
			if err != nil {
				return Reply{Intent: ru.intent, Text: applyPromptText}
			}
			return Reply{Intent: ru.intent, Text: text}
		}
	}
	return Reply{Intent: IntentGeneral, Text: greetingText}
}

// CategoryForIntent maps an intent onto the conversation category stored
// with the transcript.
func CategoryForIntent(in Intent) models.ConversationCategory {
	switch in {
	case IntentCareer, IntentApply:
		return models.CategoryCareer
	case IntentService:
		return models.CategoryService
	default:
		return models.CategoryGeneral
	}
}

func careerReply(active []models.JobListing) string {
	var b strings.Builder
	b.WriteString("We're hiring! Here are our current openings:\n")
	for i, l := range active {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, l.Title, l.Location)
	}
	b.WriteString("Would you like to apply for one of these positions? Just say \"apply\" and I'll walk you through it.")
	return b.String()
}
