package pages

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by unit tests and local tooling.
// It mirrors GormStore semantics closely enough for the state machine:
// global slug namespace, not-found mapping, owner-scoped deletes.
type MemStore struct {
	mu    sync.Mutex
	seq   int
	Pages map[string]*Page
}

func NewMemStore() *MemStore {
	return &MemStore{Pages: make(map[string]*Page)}
}

func (s *MemStore) Create(p *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		s.seq++
		p.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", s.seq)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	s.Pages[p.ID] = &cp
	return nil
}

func (s *MemStore) ByID(id string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemStore) BySlug(slug string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.Pages {
		if p.CustomSlug != nil && *p.CustomSlug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) SlugTaken(candidate, excludePageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.Pages {
		if p.ID == excludePageID {
			continue
		}
		if p.CustomSlug != nil && *p.CustomSlug == candidate {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) ListByOwner(ownerID uint) ([]Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Page
	for _, p := range s.Pages {
		if p.UserID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ListUnpaidByOwner(ownerID uint) ([]Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Page
	for _, p := range s.Pages {
		if p.UserID != ownerID {
			continue
		}
		if !p.Published || p.PaymentStatus != PaymentPaid {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Update(pageID string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Pages[pageID]
	if !ok {
		return ErrNotFound
	}

	for col, v := range fields {
		switch col {
		case "title":
			p.Title = v.(string)
		case "custom_slug":
			p.CustomSlug = toStringPtr(v)
		case "published":
			p.Published = v.(bool)
		case "payment_status":
			p.PaymentStatus = v.(PaymentStatus)
		case "payment_intent_id":
			p.PaymentIntentID = toStringPtr(v)
		case "dispute_id":
			p.DisputeID = toStringPtr(v)
		case "published_url":
			p.PublishedURL = toStringPtr(v)
		case "published_at":
			p.PublishedAt = toTimePtr(v)
		case "paid_at":
			p.PaidAt = toTimePtr(v)
		case "disputed_at":
			p.DisputedAt = toTimePtr(v)
		default:
			return fmt.Errorf("memstore: unknown column %q", col)
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) Delete(ownerID uint, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.Pages[pageID]
	if !ok || p.UserID != ownerID {
		return ErrNotFound
	}
	delete(s.Pages, pageID)
	return nil
}

func toStringPtr(v interface{}) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return &t
	case *string:
		return t
	default:
		panic(fmt.Sprintf("memstore: not a string value: %T", v))
	}
}

func toTimePtr(v interface{}) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return &t
	case *time.Time:
		return t
	default:
		panic(fmt.Sprintf("memstore: not a time value: %T", v))
	}
}
