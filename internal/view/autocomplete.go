package view

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"go.uber.org/zap"
)

const (
	DefaultDebounce = 200 * time.Millisecond
	maxSuggestions  = 8
)

// Keywords is the offline suggestion list used when the API has nothing.
var Keywords = []string{
	"кошка", "кот", "котёнок", "собака", "пёс", "щенок",
	"попугай", "хомяк", "кролик", "морская свинка", "хорёк", "черепаха", "крыса",
	"рыжий", "чёрный", "белый", "серый", "пятнистый", "полосатый",
	"ошейник", "чип", "клеймо", "породистый", "без хвоста",
}

type SuggestionsAPI interface {
	Suggestions(ctx context.Context, text string) ([]string, error)
}

// Autocomplete holds the search-as-you-type state. Input is debounced: only
// the last query of a quiet window reaches the API.
type Autocomplete struct {
	mu          sync.RWMutex
	query       string
	suggestions []string

	api       SuggestionsAPI
	debouncer *timer.Debouncer
	keywords  []string
	logger    *logger.Logger
}

func NewAutocomplete(api SuggestionsAPI, clock timer.Clock, window time.Duration, log *logger.Logger) *Autocomplete {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Autocomplete{
		api:       api,
		debouncer: timer.NewDebouncer(clock, window),
		keywords:  Keywords,
		logger:    log.Named("Autocomplete"),
	}
}

// Input records the query and schedules a lookup. An empty query clears the
// list at once.
func (a *Autocomplete) Input(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	a.mu.Lock()
	a.query = text
	if text == "" {
		a.suggestions = nil
	}
	a.mu.Unlock()

	if text == "" {
		a.debouncer.Cancel()
		return
	}
	// the lookup outlives the request that typed it
	ctx = context.WithoutCancel(ctx)
	a.debouncer.Trigger(func() { a.lookup(ctx, text) })
}

// Current returns the query and the suggestions computed for it.
func (a *Autocomplete) Current() (string, []string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, len(a.suggestions))
	copy(out, a.suggestions)
	return a.query, out
}

func (a *Autocomplete) lookup(ctx context.Context, text string) {
	found, err := a.api.Suggestions(ctx, text)
	if err != nil {
		a.logger.Debug("suggestions unavailable, using keyword list", zap.Error(err))
	}
	if err != nil || len(found) == 0 {
		found = Fallback(a.keywords, text)
	}
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}

	a.mu.Lock()
	// newer input already replaced this query
	if a.query == text {
		a.suggestions = found
	}
	a.mu.Unlock()
}

// Fallback filters keywords by case-insensitive substring match.
func Fallback(keywords []string, text string) []string {
	needle := strings.ToLower(strings.TrimSpace(text))
	out := []string{}
	if needle == "" {
		return out
	}
	for _, k := range keywords {
		if strings.Contains(strings.ToLower(k), needle) {
			out = append(out, k)
		}
	}
	return out
}
