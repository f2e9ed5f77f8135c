package runstore

import (
	"testing"

	"newsdigest/internal/model"

	"github.com/go-playground/assert/v2"
)

const (
	testAlertID   = "alert-1"
	testTimestamp = "2024-01-20T10:00:00Z"
	testCompanyID = "company-1"
)

func newsTitles(s *Store) []string {
	var titles []string
	for _, item := range s.Runs()[0].Companies[0].News {
		titles = append(titles, item.Title)
	}
	return titles
}

func testRuns() []model.AlertRun {
	return []model.AlertRun{
		{
			RunID:     "run-1",
			Date:      "20 January",
			Timestamp: testTimestamp,
			Companies: []model.CompanyWithNews{
				{
					ID:   testCompanyID,
					Name: "Acme",
					News: []model.NewsItem{
						{Title: "A", KeyPoints: []string{"a1"}},
						{Title: "B", KeyPoints: []string{"b1", "b2"}},
						{Title: "C", KeyPoints: []string{"c1"}},
					},
				},
			},
		},
	}
}

func TestDeleteNewsItem_RemovesAtIndex(t *testing.T) {
	s := New(testRuns())

	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 1)

	assert.Equal(t, []string{"A", "C"}, newsTitles(s))
	assert.Equal(t, true, s.IsDeleted(testAlertID, testTimestamp, testCompanyID, "B"))
	assert.Equal(t, false, s.IsDeleted(testAlertID, testTimestamp, testCompanyID, "A"))
}

func TestDeleteRestore_LIFOReturnsOriginalOrder(t *testing.T) {
	s := New(testRuns())

	// Delete B (index 1), then A (index 0 of the remaining [A, C]).
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 1)
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 0)
	assert.Equal(t, []string{"C"}, newsTitles(s))

	// Restore pops A first, then B, each back to its original index.
	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID)
	assert.Equal(t, []string{"A", "C"}, newsTitles(s))

	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID)
	assert.Equal(t, []string{"A", "B", "C"}, newsTitles(s))
	assert.Equal(t, 0, s.DeletedCount(testAlertID, testTimestamp, testCompanyID))
}

func TestDeleteNewsItem_StaleTargetIsNoOp(t *testing.T) {
	s := New(testRuns())
	want := testRuns()

	s.DeleteNewsItem(testAlertID, "2024-01-21T10:00:00Z", testCompanyID, 0)
	s.DeleteNewsItem(testAlertID, testTimestamp, "company-404", 0)
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, -1)
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 3)

	assert.Equal(t, want, s.Runs())
	assert.Equal(t, 0, s.DeletedCount(testAlertID, testTimestamp, testCompanyID))
}

func TestRestoreNewsItem_EmptyStackIsNoOp(t *testing.T) {
	s := New(testRuns())
	want := testRuns()

	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID)

	assert.Equal(t, want, s.Runs())
}

func TestRestoreNewsItem_ClampsIndexWhenNewsShrank(t *testing.T) {
	s := New(testRuns())

	// Delete C (recorded at index 2), then delete A and B so the list is
	// empty. Restoring C must not panic; it lands at the end.
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 2)
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 0)
	s.DeleteNewsItem(testAlertID, testTimestamp, testCompanyID, 0)
	assert.Equal(t, 0, len(s.Runs()[0].Companies[0].News))

	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID) // B back at 0
	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID) // A back at 0
	s.RestoreNewsItem(testAlertID, testTimestamp, testCompanyID) // C at recorded index 2

	assert.Equal(t, []string{"A", "B", "C"}, newsTitles(s))
}
