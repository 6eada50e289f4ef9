package pages

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
)

// ErrNotFound is returned for unresolvable ids/slugs. Callers map it to a
// "page not available" response, never to a system fault.
var ErrNotFound = errors.New("page not found")

// Store is the single abstraction over page persistence. Handlers doing plain
// CRUD go through the global DB directly; everything the publication state
// machine touches goes through here so it can be tested against MemStore.
type Store interface {
	Create(p *Page) error
	ByID(id string) (*Page, error)
	BySlug(slug string) (*Page, error)

	// SlugTaken checks the global slug namespace, across all owners,
	// ignoring excludePageID so a page can keep its own slug.
	SlugTaken(candidate, excludePageID string) (bool, error)

	ListByOwner(ownerID uint) ([]Page, error)

	// ListUnpaidByOwner returns pages with published == false OR
	// payment_status != paid.
	ListUnpaidByOwner(ownerID uint) ([]Page, error)

	Update(pageID string, fields map[string]interface{}) error
	Delete(ownerID uint, pageID string) error
}

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Resolve maps an incoming public path segment to a page. Slug lookup wins;
// the opaque id is the fallback, so /p/{id} and /s/{slug} can address the
// same page.
func Resolve(s Store, idOrSlug string) (*Page, error) {
	p, err := s.BySlug(idOrSlug)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if !uuidRe.MatchString(idOrSlug) {
		return nil, ErrNotFound
	}
	return s.ByID(idOrSlug)
}

// GormStore persists pages through the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(p *Page) error {
	return s.db.Create(p).Error
}

func (s *GormStore) ByID(id string) (*Page, error) {
	var p Page
	err := s.db.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) BySlug(slug string) (*Page, error) {
	var p Page
	err := s.db.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&p, "custom_slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) SlugTaken(candidate, excludePageID string) (bool, error) {
	var count int64
	q := s.db.Model(&Page{}).Where("custom_slug = ?", candidate)
	if excludePageID != "" {
		q = q.Where("id <> ?", excludePageID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListByOwner(ownerID uint) ([]Page, error) {
	var out []Page
	err := s.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) ListUnpaidByOwner(ownerID uint) ([]Page, error) {
	var out []Page
	err := s.db.
		Where("user_id = ? AND (published = ? OR payment_status <> ?)", ownerID, false, PaymentPaid).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) Update(pageID string, fields map[string]interface{}) error {
	res := s.db.Model(&Page{}).Where("id = ?", pageID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ownerID uint, pageID string) error {
	res := s.db.Where("id = ? AND user_id = ?", pageID, ownerID).Delete(&Page{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
