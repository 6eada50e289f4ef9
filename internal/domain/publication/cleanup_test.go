package publication

import (
	"errors"
	"testing"

	"memorizu-app/internal/domain/pages"
)

// flakyStore fails deletion of selected pages, simulating per-item store
// errors inside a batch.
type flakyStore struct {
	*pages.MemStore
	failIDs map[string]bool
}

func (s *flakyStore) Delete(ownerID uint, pageID string) error {
	if s.failIDs[pageID] {
		return errors.New("store unavailable")
	}
	return s.MemStore.Delete(ownerID, pageID)
}

func TestBulkDelete_PartialFailure(t *testing.T) {
	t.Parallel()

	mem := pages.NewMemStore()
	var ids []string
	for i := 0; i < 3; i++ {
		p := &pages.Page{UserID: 1, PaymentStatus: pages.PaymentUnpaid}
		if err := mem.Create(p); err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, p.ID)
	}

	store := &flakyStore{MemStore: mem, failIDs: map[string]bool{ids[1]: true}}

	res := BulkDelete(store, 1, ids, 0)

	if len(res.Succeeded) != 2 || res.Succeeded[0] != ids[0] || res.Succeeded[1] != ids[2] {
		t.Fatalf("unexpected succeeded set: %v", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0] != ids[1] {
		t.Fatalf("unexpected failed set: %v", res.Failed)
	}

	// The failing item must not roll back its neighbors.
	if _, err := mem.ByID(ids[0]); !errors.Is(err, pages.ErrNotFound) {
		t.Fatalf("first page should be gone")
	}
	if _, err := mem.ByID(ids[1]); err != nil {
		t.Fatalf("second page should survive: %v", err)
	}
	if _, err := mem.ByID(ids[2]); !errors.Is(err, pages.ErrNotFound) {
		t.Fatalf("third page should be gone")
	}
}

func TestBulkDelete_OwnershipEnforcedByStore(t *testing.T) {
	t.Parallel()

	store := pages.NewMemStore()
	mine := &pages.Page{UserID: 1, PaymentStatus: pages.PaymentUnpaid}
	theirs := &pages.Page{UserID: 2, PaymentStatus: pages.PaymentUnpaid}
	for _, p := range []*pages.Page{mine, theirs} {
		if err := store.Create(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res := BulkDelete(store, 1, []string{mine.ID, theirs.ID}, 0)

	if len(res.Succeeded) != 1 || res.Succeeded[0] != mine.ID {
		t.Fatalf("unexpected succeeded set: %v", res.Succeeded)
	}
	if len(res.Failed) != 1 || res.Failed[0] != theirs.ID {
		t.Fatalf("another owner's page must land in failed: %v", res.Failed)
	}
	if _, err := store.ByID(theirs.ID); err != nil {
		t.Fatalf("another owner's page must survive: %v", err)
	}
}

func TestListUnpaid(t *testing.T) {
	t.Parallel()

	store := pages.NewMemStore()
	published := &pages.Page{UserID: 7, Published: true, PaymentStatus: pages.PaymentPaid}
	pending := &pages.Page{UserID: 7, PaymentStatus: pages.PaymentPending}
	// Published but payment later degraded: still eligible for cleanup listing.
	issue := &pages.Page{UserID: 7, Published: true, PaymentStatus: pages.PaymentDisputed}
	for _, p := range []*pages.Page{published, pending, issue} {
		if err := store.Create(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := ListUnpaid(store, 7)
	if err != nil {
		t.Fatalf("list unpaid: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 cleanup candidates, got %d", len(list))
	}
	for _, p := range list {
		if p.ID == published.ID {
			t.Fatalf("fully paid page must not be a cleanup candidate")
		}
	}
}
