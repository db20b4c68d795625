// Package view assembles the per-page view-models served to the browser.
package view

import (
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/listing"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/navigation"
)

type SessionReader interface {
	Snapshot() domain.Session
}

type ListingReader interface {
	Snapshot() listing.State
	Page() []domain.Pet
}

type NotificationLister interface {
	List() []domain.Notification
}

type RouteTaker interface {
	Take() navigation.Route
}

// Page is embedded in every view-model: the header state, the toasts and a
// pending redirect the client should follow.
type Page struct {
	Session       domain.Session        `json:"session"`
	Notifications []domain.Notification `json:"notifications"`
	Redirect      navigation.Route      `json:"redirect,omitempty"`
}

type Home struct {
	Page
	Slider     []domain.Pet      `json:"slider"`
	Listings   []domain.Pet      `json:"listings"`
	Pagination domain.Pagination `json:"pagination"`
}

type Search struct {
	Page
	Filters    domain.Filters    `json:"filters"`
	Listings   []domain.Pet      `json:"listings"`
	Pagination domain.Pagination `json:"pagination"`
	Total      int               `json:"total"`
}

type Card struct {
	Page
	Pet     domain.Pet `json:"pet"`
	Gallery []string   `json:"gallery"`
	CanEdit bool       `json:"canEdit"`
}

// ListingRow is one of the user's own listings on the profile page.
type ListingRow struct {
	domain.Pet
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

type Profile struct {
	Page
	User     *domain.UserProfile `json:"user"`
	Listings []ListingRow        `json:"listings"`
}

// AddListing pre-fills the contact block from the signed-in user.
type AddListing struct {
	Page
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Builder struct {
	session  SessionReader
	listings ListingReader
	toasts   NotificationLister
	routes   RouteTaker
}

func NewBuilder(s SessionReader, l ListingReader, n NotificationLister, r RouteTaker) *Builder {
	return &Builder{session: s, listings: l, toasts: n, routes: r}
}

// Page consumes the pending redirect.
func (b *Builder) Page() Page {
	sess := b.session.Snapshot()
	sess.Token = ""
	return Page{
		Session:       sess,
		Notifications: b.toasts.List(),
		Redirect:      b.routes.Take(),
	}
}

func (b *Builder) Home() Home {
	st := b.listings.Snapshot()
	return Home{
		Page:       b.Page(),
		Slider:     nonNil(st.Slider),
		Listings:   nonNil(b.listings.Page()),
		Pagination: st.Pagination,
	}
}

func (b *Builder) Search() Search {
	st := b.listings.Snapshot()
	return Search{
		Page:       b.Page(),
		Filters:    st.Filters,
		Listings:   nonNil(b.listings.Page()),
		Pagination: st.Pagination,
		Total:      len(st.Filtered),
	}
}

func (b *Builder) Card(pet domain.Pet) Card {
	gallery := pet.Photos
	if len(gallery) == 0 && pet.Image != "" {
		gallery = []string{pet.Image}
	}
	return Card{
		Page:    b.Page(),
		Pet:     pet,
		Gallery: nonNil(gallery),
		CanEdit: b.owns(pet) && pet.Status.Mutable(),
	}
}

func (b *Builder) Profile() Profile {
	p := b.Page()
	st := b.listings.Snapshot()
	rows := make([]ListingRow, 0, len(st.Mine))
	for _, pet := range st.Mine {
		mutable := pet.Status.Mutable()
		rows = append(rows, ListingRow{Pet: pet, CanEdit: mutable, CanDelete: mutable})
	}
	return Profile{Page: p, User: p.Session.User, Listings: rows}
}

func (b *Builder) AddListing() AddListing {
	p := b.Page()
	out := AddListing{Page: p}
	if u := p.Session.User; u != nil {
		out.Name, out.Phone, out.Email = u.Name, u.Phone, u.Email
	}
	return out
}

// owns matches a listing to the signed-in user by contact details; listings
// do not carry an owner id.
func (b *Builder) owns(pet domain.Pet) bool {
	u := b.session.Snapshot().User
	if u == nil {
		return false
	}
	return (u.Email != "" && u.Email == pet.Email) || (u.Phone != "" && u.Phone == pet.Phone)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
