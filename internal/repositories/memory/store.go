// Package memory is the default record store: plain maps guarded by one
// mutex, with per-entity monotonic id sequences. A process restart
// discards everything; durable backends live in the sibling packages.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/privacyweave/backend/internal/models"
)

// sequence hands out monotonically increasing positive ids. Ids are never
// reused within the process lifetime.
type sequence struct {
	next int
}

func (s *sequence) Next() int {
	s.next++
	return s.next
}

// Store owns every in-memory table. One instance backs all the per-entity
// repositories returned from its accessors. Maps hold values, so callers
// always get copies and can never mutate a stored record in place.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	users        map[int]models.User
	inquiries    map[int]models.Inquiry
	listings     map[int]models.JobListing
	applications map[int]models.JobApplication
	convos       map[int]models.ChatConversation
	messages     map[int]models.ChatMessage

	userSeq        sequence
	inquirySeq     sequence
	listingSeq     sequence
	applicationSeq sequence
	convoSeq       sequence
	messageSeq     sequence
}

type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        make(map[int]models.User),
		inquiries:    make(map[int]models.Inquiry),
		listings:     make(map[int]models.JobListing),
		applications: make(map[int]models.JobApplication),
		convos:       make(map[int]models.ChatConversation),
		messages:     make(map[int]models.ChatMessage),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newestFirst orders by creation time descending; ids are monotonic with
// time, so the higher id wins a timestamp tie.
func newestFirst(ids []int, createdAt func(id int) time.Time) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := createdAt(ids[i]), createdAt(ids[j])
		if a.Equal(b) {
			return ids[i] > ids[j]
		}
		return a.After(b)
	})
}
