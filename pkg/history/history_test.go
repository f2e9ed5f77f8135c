package history

import (
	"testing"
	"time"

	"newsdigest/internal/model"

	"github.com/go-playground/assert/v2"
)

func run(id, timestamp string, companies ...model.CompanyWithNews) model.AlertRun {
	return model.AlertRun{RunID: id, Timestamp: timestamp, Companies: companies}
}

func company(id string, titles ...string) model.CompanyWithNews {
	c := model.CompanyWithNews{ID: id, Name: id}
	for _, title := range titles {
		c.News = append(c.News, model.NewsItem{
			Title:     title,
			KeyPoints: []string{title + " point 1", title + " point 2"},
		})
	}
	return c
}

func TestGroupNewsByRunDate_SameDayRunsMerge(t *testing.T) {
	runs := []model.AlertRun{
		run("r1", "2024-01-20T08:00:00Z", company("c1", "A", "B")),
		run("r2", "2024-01-20T18:00:00Z", company("c2", "C")),
		run("r3", "2024-01-19T08:00:00Z", company("c1", "D")),
	}

	groups := GroupNewsByRunDate(runs)

	assert.Equal(t, 2, len(groups))
	assert.Equal(t, "20 January", groups[0].Date)
	assert.Equal(t, "2024-01-20T08:00:00Z", groups[0].Timestamp)

	var titles []string
	for _, item := range groups[0].News {
		titles = append(titles, item.Title)
	}
	// Arrival order preserved, never re-sorted.
	assert.Equal(t, []string{"A", "B", "C"}, titles)

	assert.Equal(t, "19 January", groups[1].Date)
}

func TestGroupNewsByRunDate_SkipsEmptyAndUnparseableRuns(t *testing.T) {
	runs := []model.AlertRun{
		run("r1", "2024-01-20T08:00:00Z", model.CompanyWithNews{ID: "c1"}),
		run("r2", "not-a-timestamp", company("c1", "A")),
	}

	assert.Equal(t, 0, len(GroupNewsByRunDate(runs)))
}

func TestGroupNewsByRunDate_SortsNewestFirst(t *testing.T) {
	runs := []model.AlertRun{
		run("r1", "2024-01-01T10:00:00Z", company("c1", "old")),
		run("r2", "2024-01-15T10:00:00Z", company("c1", "new")),
	}

	groups := GroupNewsByRunDate(runs)

	assert.Equal(t, "15 January", groups[0].Date)
	assert.Equal(t, "01 January", groups[1].Date)
}

func TestFilterRunsByDateWindow(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	runs := []model.AlertRun{
		run("r1", "2024-01-01T10:00:00Z", company("c1", "A")),
		run("r2", "2024-01-15T10:00:00Z", company("c1", "B")),
		run("r3", "2024-01-20T10:00:00Z", company("c1", "C")),
	}

	today := FilterRunsByDateWindow(runs, Today, now)
	assert.Equal(t, 1, len(today))
	assert.Equal(t, "r3", today[0].RunID)

	// 2024-01-20 is a Saturday; the week began Monday the 15th.
	week := FilterRunsByDateWindow(runs, ThisWeek, now)
	assert.Equal(t, 2, len(week))
	assert.Equal(t, "r2", week[0].RunID)
	assert.Equal(t, "r3", week[1].RunID)

	month := FilterRunsByDateWindow(runs, ThisMonth, now)
	assert.Equal(t, 3, len(month))

	all := FilterRunsByDateWindow(runs, AllAlerts, now)
	assert.Equal(t, runs, all)
}

func TestFilterRunsByDateWindow_DropsFutureRuns(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	runs := []model.AlertRun{
		run("r1", "2024-01-21T10:00:00Z", company("c1", "A")),
	}

	assert.Equal(t, 0, len(FilterRunsByDateWindow(runs, ThisMonth, now)))
}

func TestFilterRunsByCompanies_EmptySelectionIsIdentity(t *testing.T) {
	runs := []model.AlertRun{
		run("r1", "2024-01-20T10:00:00Z", company("c1", "A"), company("c2", "B")),
	}

	assert.Equal(t, runs, FilterRunsByCompanies(runs, nil))
	assert.Equal(t, runs, FilterRunsByCompanies(runs, []string{}))
}

func TestFilterRunsByCompanies_KeepsSelectedWithNews(t *testing.T) {
	runs := []model.AlertRun{
		run("r1", "2024-01-20T10:00:00Z",
			company("c1", "A"),
			company("c2", "B"),
			model.CompanyWithNews{ID: "c3"}, // selected but newsless
		),
		run("r2", "2024-01-19T10:00:00Z", company("c2", "C")),
	}

	filtered := FilterRunsByCompanies(runs, []string{"c1", "c3"})

	assert.Equal(t, 1, len(filtered))
	assert.Equal(t, "r1", filtered[0].RunID)
	assert.Equal(t, 1, len(filtered[0].Companies))
	assert.Equal(t, "c1", filtered[0].Companies[0].ID)

	// Input untouched.
	assert.Equal(t, 3, len(runs[0].Companies))
}

func TestFormatNewsPoints_GranularityAsymmetry(t *testing.T) {
	companies := []model.CompanyWithNews{
		company("c1", "Acme raises funding"),
		company("c2", "Globex ships product"),
	}

	unfiltered := FormatNewsPoints(companies, nil)
	assert.Equal(t, "• Acme raises funding\n• Globex ships product", unfiltered)

	filtered := FormatNewsPoints(companies, []string{"c2"})
	assert.Equal(t, "• Globex ships product point 1\n• Globex ships product point 2", filtered)
}

func TestVisibleCompanies(t *testing.T) {
	companies := []model.CompanyWithNews{
		company("c1"), company("c2"), company("c3"), company("c4"), company("c5"),
	}

	visible, remaining := VisibleCompanies(companies, 3)
	assert.Equal(t, 3, len(visible))
	assert.Equal(t, 2, remaining)

	visible, remaining = VisibleCompanies(companies[:2], 3)
	assert.Equal(t, 2, len(visible))
	assert.Equal(t, 0, remaining)
}

func TestFormatRunDate(t *testing.T) {
	assert.Equal(t, "20 January", FormatRunDate("2024-01-20T10:00:00Z"))
	assert.Equal(t, "05 February", FormatRunDate("2024-02-05T00:00:00Z"))
	assert.Equal(t, "Invalid Date", FormatRunDate("yesterday"))
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", FormatRelativeDate(now.Add(-2*time.Hour), now))
	assert.Equal(t, "1 day ago", FormatRelativeDate(now.Add(-30*time.Hour), now))
	assert.Equal(t, "5 days ago", FormatRelativeDate(now.AddDate(0, 0, -5), now))
}
