package cron

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassify_KnownPatterns(t *testing.T) {
	assert.Equal(t, Daily, Classify("30 3 * * *"))
	assert.Equal(t, Weekly, Classify("30 3 * * 1"))
	assert.Equal(t, Weekly, Classify("0 12 * * 6"))
	assert.Equal(t, BiWeekly, Classify("30 3 * * 1/2"))
	assert.Equal(t, Monthly, Classify("30 3 1 * *"))
	assert.Equal(t, Monthly, Classify("30 3 31 * *"))
}

func TestClassify_FallsBackToDaily(t *testing.T) {
	assert.Equal(t, Daily, Classify(""))
	assert.Equal(t, Daily, Classify("   "))
	assert.Equal(t, Daily, Classify("garbage"))
	assert.Equal(t, Daily, Classify("1 2 3"))
	assert.Equal(t, Daily, Classify("1 2 3 4 5 6"))

	// Recognisable cron, but not one of our frequency shapes.
	assert.Equal(t, Daily, Classify("30 3 * 6 *"))
	assert.Equal(t, Daily, Classify("30 3 * * 7"))
	assert.Equal(t, Daily, Classify("*/5 * * * 1-5"))
}

func TestClassify_RejectsPaddedMonthday(t *testing.T) {
	assert.Equal(t, Monthly, Classify("30 3 5 * *"))
	assert.Equal(t, Daily, Classify("30 3 05 * *"))
	assert.Equal(t, Daily, Classify("30 3 32 * *"))
	assert.Equal(t, Daily, Classify("30 3 0 * *"))
}

func TestBuild_Patterns(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, "30 3 * * *", Build(Daily, p))
	assert.Equal(t, "30 3 * * 1", Build(Weekly, p))
	assert.Equal(t, "30 3 * * 1/2", Build(BiWeekly, p))
	assert.Equal(t, "30 3 1 * *", Build(Monthly, p))
}

func TestBuild_ClampsOutOfRange(t *testing.T) {
	got := Build(Daily, Params{Hour: 99, Minute: -5, DayOfWeek: 1, DayOfMonth: 1})
	assert.Equal(t, "0 23 * * *", got)

	got = Build(Weekly, Params{Hour: 10, Minute: 0, DayOfWeek: 12, DayOfMonth: 1})
	assert.Equal(t, "0 10 * * 6", got)

	got = Build(Monthly, Params{Hour: 10, Minute: 0, DayOfWeek: 1, DayOfMonth: 0})
	assert.Equal(t, "0 10 1 * *", got)
}

func TestBuild_UnknownFrequencyFallsBackToDaily(t *testing.T) {
	assert.Equal(t, "30 3 * * *", Build(Frequency("hourly"), DefaultParams()))
}

func TestRoundTrip(t *testing.T) {
	for _, freq := range []Frequency{Daily, Weekly, BiWeekly, Monthly} {
		assert.Equal(t, freq, Classify(BuildDefault(freq)))
	}
}
