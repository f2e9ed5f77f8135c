// Package runstore holds the mutable per-session view of one newsletter's
// fetched alert-run history. News items can be hidden (deleted) and brought
// back (restored); everything else about a run is immutable once fetched.
package runstore

import "newsdigest/internal/model"

type stackKey struct {
	AlertID   string
	Timestamp string
	CompanyID string
}

type deletedItem struct {
	Item          model.NewsItem
	OriginalIndex int
}

// Store owns the runs fetched for one alert and a side table of deleted news
// items keyed by (alert, run timestamp, company). Not safe for concurrent
// use; the owning view drives it from a single goroutine.
type Store struct {
	runs    []model.AlertRun
	deleted map[stackKey][]deletedItem
}

func New(runs []model.AlertRun) *Store {
	return &Store{
		runs:    runs,
		deleted: make(map[stackKey][]deletedItem),
	}
}

// Runs returns the current runs, including any local delete/restore
// mutations. This is the snapshot serialised by the debounced submit call.
func (s *Store) Runs() []model.AlertRun {
	return s.runs
}

// DeleteNewsItem removes the news item at index from the company inside the
// run with the given timestamp and records it for restore. If the run,
// company or index cannot be resolved the call is a no-op: the target may
// have gone stale under a background refetch, and a cosmetic hide must not
// crash the view.
func (s *Store) DeleteNewsItem(alertID, timestamp, companyID string, index int) {
	company := s.findCompany(timestamp, companyID)
	if company == nil || index < 0 || index >= len(company.News) {
		return
	}

	item := company.News[index]
	company.News = append(company.News[:index], company.News[index+1:]...)

	key := stackKey{AlertID: alertID, Timestamp: timestamp, CompanyID: companyID}
	s.deleted[key] = append(s.deleted[key], deletedItem{Item: item, OriginalIndex: index})
}

// RestoreNewsItem undoes the most recent deletion for the key, re-inserting
// the item at its original index. No-op when nothing was deleted for the key.
func (s *Store) RestoreNewsItem(alertID, timestamp, companyID string) {
	key := stackKey{AlertID: alertID, Timestamp: timestamp, CompanyID: companyID}
	stack := s.deleted[key]
	if len(stack) == 0 {
		return
	}

	entry := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(s.deleted, key)
	} else {
		s.deleted[key] = stack[:len(stack)-1]
	}

	company := s.findCompany(timestamp, companyID)
	if company == nil {
		return
	}

	index := entry.OriginalIndex
	if index > len(company.News) {
		index = len(company.News)
	}
	company.News = append(company.News[:index], append([]model.NewsItem{entry.Item}, company.News[index:]...)...)
}

// IsDeleted reports whether a news item with the given title is currently
// held in the deleted stack for the key. Matching is by title, which is how
// the front-end identifies items pending restore.
func (s *Store) IsDeleted(alertID, timestamp, companyID, title string) bool {
	key := stackKey{AlertID: alertID, Timestamp: timestamp, CompanyID: companyID}
	for _, entry := range s.deleted[key] {
		if entry.Item.Title == title {
			return true
		}
	}
	return false
}

// DeletedCount returns how many items are pending restore for the key.
func (s *Store) DeletedCount(alertID, timestamp, companyID string) int {
	return len(s.deleted[stackKey{AlertID: alertID, Timestamp: timestamp, CompanyID: companyID}])
}

func (s *Store) findCompany(timestamp, companyID string) *model.CompanyWithNews {
	for i := range s.runs {
		if s.runs[i].Timestamp != timestamp {
			continue
		}
		for j := range s.runs[i].Companies {
			if s.runs[i].Companies[j].ID == companyID {
				return &s.runs[i].Companies[j]
			}
		}
		return nil
	}
	return nil
}
