package publication

import (
	"time"

	"memorizu-app/internal/domain/pages"
)

// BulkDeleteResult partitions a cleanup batch per item. The batch as a whole
// never fails: one page refusing to die must not abort the rest.
type BulkDeleteResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// ListUnpaid returns the owner's pages eligible for cleanup: everything not
// both published and paid.
func ListUnpaid(store pages.Store, ownerID uint) ([]pages.Page, error) {
	return store.ListUnpaidByOwner(ownerID)
}

// BulkDelete deletes the given pages one by one. Deletions are independent;
// there is no transaction spanning the batch and nothing is rolled back.
// The pacing delay between items exists only so dashboard progress reads
// sensibly, not for correctness.
func BulkDelete(store pages.Store, ownerID uint, pageIDs []string, pace time.Duration) BulkDeleteResult {
	res := BulkDeleteResult{
		Succeeded: make([]string, 0, len(pageIDs)),
		Failed:    make([]string, 0),
	}

	for i, id := range pageIDs {
		if i > 0 && pace > 0 {
			time.Sleep(pace)
		}
		if err := store.Delete(ownerID, id); err != nil {
			res.Failed = append(res.Failed, id)
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}

	return res
}
