package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPetStatusMutable(t *testing.T) {
	assert.True(t, StatusActive.Mutable())
	assert.True(t, StatusOnModeration.Mutable())
	assert.False(t, StatusWasFound.Mutable())
	assert.False(t, StatusArchive.Mutable())
}

func TestFiltersQueryOmitsEmpty(t *testing.T) {
	q := Filters{District: "Невский"}.Query()
	assert.Equal(t, map[string]string{"district": "Невский"}, q)
	assert.Empty(t, Filters{}.Query())
}

func TestTotalPagesFor(t *testing.T) {
	assert.Equal(t, 0, TotalPagesFor(0, 9))
	assert.Equal(t, 1, TotalPagesFor(9, 9))
	assert.Equal(t, 2, TotalPagesFor(10, 9))
	assert.Equal(t, 0, TotalPagesFor(5, 0))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"14-03-2024", "14.03.2024", "2024-03-14", "2024-03-14T10:00:00Z"} {
		got, ok := ParseDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2024, got.Year(), s)
		assert.Equal(t, time.March, got.Month(), s)
		assert.Equal(t, 14, got.Day(), s)
	}
	_, ok := ParseDate("вчера")
	assert.False(t, ok)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(from, from.Add(23*time.Hour)))
	assert.Equal(t, 10, DaysBetween(from, from.AddDate(0, 0, 10)))
	assert.Equal(t, 0, DaysBetween(from, from.AddDate(0, 0, -3)))
}
