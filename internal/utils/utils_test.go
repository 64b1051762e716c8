package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	from := base.UnixMilli()

	assert.Equal(t, 0, DaysBetween(from, from))
	assert.Equal(t, 30, DaysBetween(from, base.Add(30*24*time.Hour).UnixMilli()))

	// Partial days truncate toward zero going forward...
	assert.Equal(t, 4, DaysBetween(from, base.Add(4*24*time.Hour+23*time.Hour).UnixMilli()))

	// ...but one hour past a deadline already counts as a day behind.
	assert.Equal(t, -1, DaysBetween(from, base.Add(-1*time.Hour).UnixMilli()))
	assert.Equal(t, -3, DaysBetween(from, base.Add(-2*24*time.Hour-time.Hour).UnixMilli()))
}

func TestSplitTrades(t *testing.T) {
	assert.Equal(t, []string{"electrical", "low voltage"}, SplitTrades("Electrical, Low Voltage"))
	assert.Equal(t, []string{"roofing"}, SplitTrades("  Roofing  "))
	assert.Empty(t, SplitTrades(""))
	assert.Empty(t, SplitTrades(" , ,"))
}

func TestFormatEpoch(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "2026-03-01T12:30:00Z", FormatEpoch(ts))
}

func TestSanitizeTrimsStringFields(t *testing.T) {
	type payload struct {
		Name  string
		Email string
		Count int
	}

	p := &payload{Name: "  Acme  ", Email: "\ta@b.test\n", Count: 3}
	Sanitize(p)

	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "a@b.test", p.Email)
	assert.Equal(t, 3, p.Count)
}
