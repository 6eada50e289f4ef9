package pages

import (
	"errors"
	"testing"
)

func TestResolve_SlugThenID(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	slug := "john-mary"
	withSlug := &Page{UserID: 1, Title: "Wedding", CustomSlug: &slug}
	if err := store.Create(withSlug); err != nil {
		t.Fatalf("create: %v", err)
	}

	plain := &Page{UserID: 1, Title: "Birthday"}
	if err := store.Create(plain); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := Resolve(store, "john-mary")
	if err != nil {
		t.Fatalf("resolve by slug: %v", err)
	}
	if got.ID != withSlug.ID {
		t.Fatalf("resolved wrong page by slug: %s", got.ID)
	}

	got, err = Resolve(store, plain.ID)
	if err != nil {
		t.Fatalf("resolve by id: %v", err)
	}
	if got.ID != plain.ID {
		t.Fatalf("resolved wrong page by id: %s", got.ID)
	}

	// A slugged page stays reachable by its opaque id too.
	got, err = Resolve(store, withSlug.ID)
	if err != nil {
		t.Fatalf("resolve slugged page by id: %v", err)
	}
	if got.ID != withSlug.ID {
		t.Fatalf("resolved wrong page: %s", got.ID)
	}

	if _, err := Resolve(store, "no-such-slug"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlugTaken_ExcludesSelf(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	slug := "our-big-day"
	p := &Page{UserID: 1, CustomSlug: &slug}
	if err := store.Create(p); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The page keeps its own slug without tripping the check.
	taken, err := store.SlugTaken("our-big-day", p.ID)
	if err != nil {
		t.Fatalf("slug taken: %v", err)
	}
	if taken {
		t.Fatalf("expected slug to be available to its own page")
	}

	// Anyone else is blocked: the namespace is global, not per-owner.
	taken, err = store.SlugTaken("our-big-day", "some-other-page")
	if err != nil {
		t.Fatalf("slug taken: %v", err)
	}
	if !taken {
		t.Fatalf("expected slug to be taken for other pages")
	}

	taken, err = store.SlugTaken("never-claimed", "")
	if err != nil {
		t.Fatalf("slug taken: %v", err)
	}
	if taken {
		t.Fatalf("expected unclaimed slug to be available")
	}
}

func TestMemStore_ListUnpaidByOwner(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	paid := &Page{UserID: 1, Published: true, PaymentStatus: PaymentPaid}
	draft := &Page{UserID: 1, PaymentStatus: PaymentUnpaid}
	failed := &Page{UserID: 1, PaymentStatus: PaymentFailed}
	otherOwner := &Page{UserID: 2, PaymentStatus: PaymentUnpaid}

	for _, p := range []*Page{paid, draft, failed, otherOwner} {
		if err := store.Create(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := store.ListUnpaidByOwner(1)
	if err != nil {
		t.Fatalf("list unpaid: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 unpaid pages, got %d", len(list))
	}
	for _, p := range list {
		if p.ID == paid.ID {
			t.Fatalf("paid+published page must not appear in unpaid list")
		}
		if p.UserID != 1 {
			t.Fatalf("unpaid list leaked another owner's page")
		}
	}
}
