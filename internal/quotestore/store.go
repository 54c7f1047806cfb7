package quotestore

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/utils/stringx"
)

// ErrNoQuote is returned by Random when no stored quotation qualifies.
var ErrNoQuote = mdwerror.New("no matching quotation").WithCode(mdwerror.CodeNotFound)

// Quote is a stored quotation
type Quote struct {
	ID        int64
	Text      string
	AddedBy   string
	CreatedAt time.Time
}

// Filter restricts which quotations qualify. A quotation qualifies only if
// every regex matches it and every string occurs in it.
type Filter struct {
	Regexes []*regexp.Regexp
	Strings []string
}

// Matches reports whether text satisfies the filter
func (f Filter) Matches(text string) bool {
	for _, re := range f.Regexes {
		if !re.MatchString(text) {
			return false
		}
	}
	for _, s := range f.Strings {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}

// Store is the interface for quotation stores
type Store interface {
	// Add stores a new quotation and returns it with its ID assigned
	Add(ctx context.Context, text, addedBy string) (*Quote, error)

	// All returns every quotation in insertion order
	All(ctx context.Context) ([]*Quote, error)

	// Count returns the number of stored quotations
	Count(ctx context.Context) (int64, error)

	// Random returns a pseudo-random quotation that satisfies the filter
	Random(ctx context.Context, filter Filter) (*Quote, error)

	// Close closes the store
	Close() error
}

func validateText(text string) error {
	if stringx.IsBlank(text) {
		return mdwerror.New("quotation text is required").WithCode(mdwerror.CodeInvalidInput)
	}
	return nil
}

// reservoir picks one element uniformly from a stream of unknown length
type reservoir struct {
	seen   int
	chosen *Quote
}

func (r *reservoir) offer(q *Quote) {
	r.seen++
	if rand.Intn(r.seen) == 0 {
		r.chosen = q
	}
}

// MemoryStore is an in-memory quotation store for development and tests
type MemoryStore struct {
	mu     sync.RWMutex
	quotes []*Quote
	nextID int64
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add stores a new quotation
func (s *MemoryStore) Add(ctx context.Context, text, addedBy string) (*Quote, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := &Quote{ID: s.nextID, Text: text, AddedBy: addedBy, CreatedAt: time.Now().UTC()}
	s.nextID++
	s.quotes = append(s.quotes, q)
	return q, nil
}

// All returns every quotation in insertion order
func (s *MemoryStore) All(ctx context.Context) ([]*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Quote, len(s.quotes))
	copy(out, s.quotes)
	return out, nil
}

// Count returns the number of stored quotations
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.quotes)), nil
}

// Random returns a pseudo-random quotation that satisfies the filter
func (s *MemoryStore) Random(ctx context.Context, filter Filter) (*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r reservoir
	for _, q := range s.quotes {
		if filter.Matches(q.Text) {
			r.offer(q)
		}
	}
	if r.chosen == nil {
		return nil, ErrNoQuote
	}
	return r.chosen, nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
