package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSuggestionsAPI struct{ mock.Mock }

func (m *MockSuggestionsAPI) Suggestions(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func newAutocomplete(api SuggestionsAPI) (*Autocomplete, *timer.Manual) {
	clock := timer.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewAutocomplete(api, clock, 0, logger.NewNop()), clock
}

func TestAutocompleteDebouncesInput(t *testing.T) {
	api := &MockSuggestionsAPI{}
	api.On("Suggestions", mock.Anything, "кош").Return([]string{"кошка", "кошечка"}, nil).Once()
	ac, clock := newAutocomplete(api)
	ctx := context.Background()

	ac.Input(ctx, "к")
	clock.Advance(100 * time.Millisecond)
	ac.Input(ctx, "ко")
	clock.Advance(150 * time.Millisecond)
	ac.Input(ctx, "кош")
	clock.Advance(199 * time.Millisecond)
	api.AssertNotCalled(t, "Suggestions", mock.Anything, mock.Anything)

	clock.Advance(time.Millisecond)

	q, list := ac.Current()
	assert.Equal(t, "кош", q)
	assert.Equal(t, []string{"кошка", "кошечка"}, list)
	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "Suggestions", 1)
}

func TestAutocompleteFallsBackToKeywords(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		api := &MockSuggestionsAPI{}
		api.On("Suggestions", mock.Anything, "РЫЖ").Return(nil, errors.New("HTTP 500"))
		ac, clock := newAutocomplete(api)

		ac.Input(context.Background(), "РЫЖ")
		clock.Advance(DefaultDebounce)

		_, list := ac.Current()
		assert.Equal(t, []string{"рыжий"}, list)
	})

	t.Run("empty result", func(t *testing.T) {
		api := &MockSuggestionsAPI{}
		api.On("Suggestions", mock.Anything, "щен").Return([]string{}, nil)
		ac, clock := newAutocomplete(api)

		ac.Input(context.Background(), "щен")
		clock.Advance(DefaultDebounce)

		_, list := ac.Current()
		assert.Equal(t, []string{"щенок"}, list)
	})
}

func TestAutocompleteEmptyInputClears(t *testing.T) {
	api := &MockSuggestionsAPI{}
	api.On("Suggestions", mock.Anything, "кот").Return([]string{"кот"}, nil)
	ac, clock := newAutocomplete(api)

	ac.Input(context.Background(), "кот")
	clock.Advance(DefaultDebounce)
	ac.Input(context.Background(), "  ")
	clock.Advance(DefaultDebounce)

	q, list := ac.Current()
	assert.Empty(t, q)
	assert.Empty(t, list)
	api.AssertNumberOfCalls(t, "Suggestions", 1)
}

func TestFallback(t *testing.T) {
	kw := []string{"Кошка", "котёнок", "собака"}
	assert.Equal(t, []string{"Кошка"}, Fallback(kw, "кош"))
	assert.Equal(t, []string{"Кошка", "котёнок"}, Fallback(kw, "ко"))
	assert.Empty(t, Fallback(kw, "попугай"))
	assert.Empty(t, Fallback(kw, ""))
}
