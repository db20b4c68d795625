package listing

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/apiclient"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/events"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultItemsPerPage = 9

// PetsAPI is the part of the remote API the listing store needs.
type PetsAPI interface {
	ListPets(ctx context.Context) ([]domain.Pet, error)
	Slider(ctx context.Context) ([]domain.Pet, error)
	GetPet(ctx context.Context, id string) (domain.Pet, error)
	SearchPets(ctx context.Context, f domain.Filters) ([]domain.Pet, error)
	QuickSearch(ctx context.Context, text string) ([]domain.Pet, error)
	UserPets(ctx context.Context, userID string) ([]domain.Pet, error)
	CreatePet(ctx context.Context, form domain.ListingForm) (string, error)
	UpdatePet(ctx context.Context, id string, form domain.ListingForm) error
	DeletePet(ctx context.Context, id string) error
}

// Auth supplies the bearer token for owner operations and reacts to a
// rejected one.
type Auth interface {
	AuthContext(ctx context.Context) context.Context
	Expire(ctx context.Context)
}

// State is the listing collection as the views see it. Slices are shared
// with the store and must be treated as read-only.
type State struct {
	All        []domain.Pet      `json:"allListings"`
	Slider     []domain.Pet      `json:"sliderListings"`
	Filtered   []domain.Pet      `json:"filteredListings"`
	Mine       []domain.Pet      `json:"userListings"`
	Filters    domain.Filters    `json:"filters"`
	Pagination domain.Pagination `json:"pagination"`
}

type Store struct {
	mu    sync.RWMutex
	state State

	api      PetsAPI
	auth     Auth
	notifier domain.Notifier
	events   events.Publisher
	logger   *logger.Logger
}

func NewStore(api PetsAPI, auth Auth, notifier domain.Notifier, pub events.Publisher, itemsPerPage int, log *logger.Logger) *Store {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &Store{
		state: State{
			Pagination: domain.Pagination{CurrentPage: 1, ItemsPerPage: itemsPerPage},
		},
		api:      api,
		auth:     auth,
		notifier: notifier,
		events:   pub,
		logger:   log.Named("ListingStore"),
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load fetches the slider and the full set in parallel. Either failing leaves
// the previous state in place.
func (s *Store) Load(ctx context.Context) bool {
	var all, slider []domain.Pet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		slider, err = s.api.Slider(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.api.ListPets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(ctx, "Не удалось загрузить объявления", err)
		return false
	}

	SortByDateDesc(all)

	s.mu.Lock()
	s.state.All = all
	s.state.Slider = slider
	s.state.Filtered = all
	s.state.Filters = domain.Filters{}
	s.resetPageLocked()
	s.mu.Unlock()

	s.logger.Info("listings loaded", zap.Int("all", len(all)), zap.Int("slider", len(slider)))
	return true
}

// Filter runs the advanced search on the server. Only non-empty keys are sent.
func (s *Store) Filter(ctx context.Context, f domain.Filters) bool {
	found, err := s.api.SearchPets(ctx, f)
	if err != nil {
		s.fail(ctx, "Не удалось выполнить поиск", err)
		return false
	}

	s.mu.Lock()
	s.state.Filters = f
	s.state.Filtered = found
	s.resetPageLocked()
	s.mu.Unlock()

	if len(found) == 0 {
		s.notifier.Push("По вашему запросу ничего не найдено", domain.KindInfo)
	}
	s.publish(ctx, events.SubjectListingFiltered, map[string]interface{}{
		"district": f.District,
		"kind":     f.Kind,
		"found":    len(found),
	})
	return true
}

// QuickSearch replaces the filtered set with the free-text search result.
// An empty query is a Reset.
func (s *Store) QuickSearch(ctx context.Context, query string) bool {
	if query == "" {
		s.Reset()
		return true
	}
	found, err := s.api.QuickSearch(ctx, query)
	if err != nil {
		s.fail(ctx, "Не удалось выполнить поиск", err)
		return false
	}

	s.mu.Lock()
	s.state.Filters = domain.Filters{}
	s.state.Filtered = found
	s.resetPageLocked()
	s.mu.Unlock()

	if len(found) == 0 {
		s.notifier.Push("По вашему запросу ничего не найдено", domain.KindInfo)
	}
	return true
}

// Reset points the filtered set back at the full set.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state.Filtered = s.state.All
	s.state.Filters = domain.Filters{}
	s.resetPageLocked()
	s.mu.Unlock()
}

// SetPage does not clamp; Page returns nothing for an out-of-range page.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	s.state.Pagination.CurrentPage = n
	s.mu.Unlock()
}

// Page returns the filtered listings on the current page.
func (s *Store) Page() []domain.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.state.Pagination
	if p.CurrentPage < 1 || p.ItemsPerPage <= 0 {
		return []domain.Pet{}
	}
	start := (p.CurrentPage - 1) * p.ItemsPerPage
	if start >= len(s.state.Filtered) {
		return []domain.Pet{}
	}
	end := min(start+p.ItemsPerPage, len(s.state.Filtered))
	return s.state.Filtered[start:end]
}

// Get fetches a single listing for the card page.
func (s *Store) Get(ctx context.Context, id string) (domain.Pet, bool) {
	pet, err := s.api.GetPet(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			s.notifier.Push("Объявление не найдено", domain.KindWarning)
			return domain.Pet{}, false
		}
		s.fail(ctx, "Не удалось загрузить объявление", err)
		return domain.Pet{}, false
	}
	return pet, true
}

// UserListings loads the listings owned by userID.
func (s *Store) UserListings(ctx context.Context, userID string) bool {
	mine, err := s.api.UserPets(s.auth.AuthContext(ctx), userID)
	if err != nil {
		s.fail(ctx, "Не удалось загрузить ваши объявления", err)
		return false
	}
	s.mu.Lock()
	s.state.Mine = mine
	s.mu.Unlock()
	return true
}

// Create validates the form locally and submits it. It returns the new id.
func (s *Store) Create(ctx context.Context, form domain.ListingForm) (string, bool) {
	if err := validation.Listing(form, true); err != nil {
		s.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return "", false
	}
	id, err := s.api.CreatePet(s.auth.AuthContext(ctx), form)
	if err != nil {
		s.fail(ctx, "Не удалось добавить объявление", err)
		return "", false
	}
	s.notifier.Push("Объявление отправлено на модерацию", domain.KindSuccess)
	s.publish(ctx, events.SubjectListingCreated, map[string]string{"id": id})
	return id, true
}

// Update edits one of the user's own listings.
func (s *Store) Update(ctx context.Context, pet domain.Pet, form domain.ListingForm) bool {
	if !pet.Status.Mutable() {
		s.notifier.Push("Это объявление нельзя редактировать", domain.KindWarning)
		return false
	}
	if err := validation.Listing(form, false); err != nil {
		s.notifier.Push(err.(validation.Errors).Message(), domain.KindWarning)
		return false
	}
	if err := s.api.UpdatePet(s.auth.AuthContext(ctx), pet.ID, form); err != nil {
		s.fail(ctx, "Не удалось обновить объявление", err)
		return false
	}
	s.notifier.Push("Объявление обновлено", domain.KindSuccess)
	s.publish(ctx, events.SubjectListingUpdated, map[string]string{"id": pet.ID})
	return true
}

// Delete removes one of the user's own listings. Archived and found listings
// are refused without contacting the server.
func (s *Store) Delete(ctx context.Context, pet domain.Pet) bool {
	if !pet.Status.Mutable() {
		s.notifier.Push("Это объявление нельзя удалить", domain.KindWarning)
		return false
	}
	if err := s.api.DeletePet(s.auth.AuthContext(ctx), pet.ID); err != nil {
		s.fail(ctx, "Не удалось удалить объявление", err)
		return false
	}

	s.mu.Lock()
	s.state.All = without(s.state.All, pet.ID)
	s.state.Filtered = without(s.state.Filtered, pet.ID)
	s.state.Slider = without(s.state.Slider, pet.ID)
	s.state.Mine = without(s.state.Mine, pet.ID)
	s.state.Pagination.TotalPages = domain.TotalPagesFor(len(s.state.Filtered), s.state.Pagination.ItemsPerPage)
	s.mu.Unlock()

	s.notifier.Push("Объявление удалено", domain.KindSuccess)
	s.publish(ctx, events.SubjectListingDeleted, map[string]string{"id": pet.ID})
	return true
}

func (s *Store) resetPageLocked() {
	s.state.Pagination.CurrentPage = 1
	s.state.Pagination.TotalPages = domain.TotalPagesFor(len(s.state.Filtered), s.state.Pagination.ItemsPerPage)
}

func (s *Store) fail(ctx context.Context, action string, err error) {
	s.logger.Warn("listing operation failed", zap.String("action", action), zap.Error(err))
	if apiclient.IsUnauthorized(err) {
		s.auth.Expire(ctx)
		return
	}
	s.notifier.Push(action+": "+err.Error(), domain.KindDanger)
}

func (s *Store) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.events.Publish(ctx, subject, data); err != nil {
		s.logger.Warn("failed to publish listing event", zap.String("subject", subject), zap.Error(err))
	}
}

// SortByDateDesc orders listings newest first. A pair where either date does
// not parse compares equal, so such listings keep their relative order.
func SortByDateDesc(pets []domain.Pet) {
	slices.SortStableFunc(pets, func(a, b domain.Pet) int {
		da, okA := domain.ParseDate(a.Date)
		db, okB := domain.ParseDate(b.Date)
		if !okA || !okB {
			return 0
		}
		return cmp.Compare(db.UnixNano(), da.UnixNano())
	})
}

// without returns a new slice; the input may be shared with other state.
func without(pets []domain.Pet, id string) []domain.Pet {
	if pets == nil {
		return nil
	}
	out := make([]domain.Pet, 0, len(pets))
	for _, p := range pets {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
