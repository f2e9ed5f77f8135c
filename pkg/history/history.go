// Package history derives the read-only views the front-end renders over an
// alert's run history: news grouped by run date, date-window and company
// filtered run lists, and the bulleted news text shown in the history table.
// Everything here is a pure function over already-fetched data.
package history

import (
	"sort"
	"strings"
	"time"

	"newsdigest/internal/model"
)

// Window selects how far back a history view reaches.
type Window string

const (
	Today     Window = "today"
	ThisWeek  Window = "this-week"
	ThisMonth Window = "this-month"
	AllAlerts Window = "all-alerts"
)

// DateGroup is all news delivered on one calendar date, flattened across
// companies. Timestamp is the instant of the first run seen for the date and
// orders groups newest first.
type DateGroup struct {
	Date      string           `json:"date"`
	Timestamp string           `json:"timestamp"`
	News      []model.NewsItem `json:"news"`
}

// GroupNewsByRunDate flattens each run's company news into per-date groups.
// Two runs on the same calendar date accumulate into one group in arrival
// order; runs contributing no news produce no group. Runs whose timestamp
// does not parse are skipped. Groups come back newest first.
func GroupNewsByRunDate(runs []model.AlertRun) []DateGroup {
	byDate := make(map[string]*DateGroup)
	var order []string

	for _, run := range runs {
		ts, err := time.Parse(time.RFC3339, run.Timestamp)
		if err != nil {
			continue
		}

		var news []model.NewsItem
		for _, company := range run.Companies {
			news = append(news, company.News...)
		}
		if len(news) == 0 {
			continue
		}

		date := ts.Format("02 January")
		group, ok := byDate[date]
		if !ok {
			group = &DateGroup{Date: date, Timestamp: run.Timestamp}
			byDate[date] = group
			order = append(order, date)
		}
		group.News = append(group.News, news...)
	}

	groups := make([]DateGroup, 0, len(order))
	for _, date := range order {
		groups = append(groups, *byDate[date])
	}

	// Newest first, by the group's representative run instant rather than
	// the formatted date string.
	sort.SliceStable(groups, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, groups[i].Timestamp)
		tj, _ := time.Parse(time.RFC3339, groups[j].Timestamp)
		return ti.After(tj)
	})

	return groups
}

// FilterRunsByDateWindow keeps the runs whose timestamp falls inside the
// window ending at now. Runs outside the window are dropped outright; run
// shells are never retained with emptied news. AllAlerts returns the input
// unchanged. Weeks start on Monday.
func FilterRunsByDateWindow(runs []model.AlertRun, window Window, now time.Time) []model.AlertRun {
	if window == AllAlerts {
		return runs
	}

	var start time.Time
	switch window {
	case Today:
		start = startOfDay(now)
	case ThisWeek:
		start = startOfWeek(now)
	case ThisMonth:
		start = startOfMonth(now)
	default:
		return runs
	}
	end := endOfDay(now)

	var filtered []model.AlertRun
	for _, run := range runs {
		ts, err := time.Parse(time.RFC3339, run.Timestamp)
		if err != nil {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		filtered = append(filtered, run)
	}
	return filtered
}

// FilterRunsByCompanies narrows each run to the selected companies that have
// news, dropping runs left with none. An empty selection means no filter and
// returns the input unchanged.
func FilterRunsByCompanies(runs []model.AlertRun, companyIDs []string) []model.AlertRun {
	if len(companyIDs) == 0 {
		return runs
	}

	selected := make(map[string]bool, len(companyIDs))
	for _, id := range companyIDs {
		selected[id] = true
	}

	var filtered []model.AlertRun
	for _, run := range runs {
		var companies []model.CompanyWithNews
		for _, company := range run.Companies {
			if selected[company.ID] && len(company.News) > 0 {
				companies = append(companies, company)
			}
		}
		if len(companies) == 0 {
			continue
		}
		run.Companies = companies
		filtered = append(filtered, run)
	}
	return filtered
}

// FormatNewsPoints renders the bulleted news column. With no company
// selection it emits one line per news title across all companies; with a
// selection it emits one line per key point for the selected companies only.
// The granularity asymmetry is deliberate product behaviour.
func FormatNewsPoints(companies []model.CompanyWithNews, selectedCompanyIDs []string) string {
	var lines []string

	if len(selectedCompanyIDs) == 0 {
		for _, company := range companies {
			for _, item := range company.News {
				lines = append(lines, "• "+item.Title)
			}
		}
		return strings.Join(lines, "\n")
	}

	selected := make(map[string]bool, len(selectedCompanyIDs))
	for _, id := range selectedCompanyIDs {
		selected[id] = true
	}

	for _, company := range companies {
		if !selected[company.ID] {
			continue
		}
		for _, item := range company.News {
			for _, point := range item.KeyPoints {
				lines = append(lines, "• "+point)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// VisibleCompanies splits companies into the first max to render as chips and
// the count folded behind the "+N" badge.
func VisibleCompanies(companies []model.CompanyWithNews, max int) ([]model.CompanyWithNews, int) {
	if max < 0 {
		max = 0
	}
	if len(companies) <= max {
		return companies, 0
	}
	return companies[:max], len(companies) - max
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
