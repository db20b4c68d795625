package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
)

func (c *Client) listPets(ctx context.Context, endpoint, method, path string, query url.Values) ([]domain.Pet, error) {
	var raw json.RawMessage
	if err := c.do(ctx, endpoint, method, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return c.toPets(decodePets(raw)), nil
}

// ListPets returns every published listing.
func (c *Client) ListPets(ctx context.Context) ([]domain.Pet, error) {
	return c.listPets(ctx, "list_pets", http.MethodGet, "/pets", nil)
}

// Slider returns the promotional subset shown on the home page.
func (c *Client) Slider(ctx context.Context) ([]domain.Pet, error) {
	return c.listPets(ctx, "slider", http.MethodGet, "/pets/slider", nil)
}

func (c *Client) GetPet(ctx context.Context, id string) (domain.Pet, error) {
	pets, err := c.listPets(ctx, "get_pet", http.MethodGet, "/pets/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Pet{}, err
	}
	if len(pets) == 0 {
		return domain.Pet{}, &Error{Status: http.StatusNotFound, Message: "listing not found"}
	}
	return pets[0], nil
}

// SearchPets is the advanced search. Empty filter values never reach the query string.
func (c *Client) SearchPets(ctx context.Context, f domain.Filters) ([]domain.Pet, error) {
	query := url.Values{}
	for k, v := range f.Query() {
		query.Set(k, v)
	}
	return c.listPets(ctx, "search_order", http.MethodGet, "/search/order", query)
}

func (c *Client) QuickSearch(ctx context.Context, text string) ([]domain.Pet, error) {
	return c.listPets(ctx, "quick_search", http.MethodGet, "/search", url.Values{"query": {text}})
}

// Suggestions returns autocomplete keywords for a partial query.
func (c *Client) Suggestions(ctx context.Context, text string) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "suggestions", http.MethodGet, "/search/suggestions", url.Values{"query": {text}}, nil, &raw); err != nil {
		return nil, err
	}
	return decodeSuggestions(raw), nil
}

func (c *Client) UserPets(ctx context.Context, userID string) ([]domain.Pet, error) {
	return c.listPets(ctx, "user_orders", http.MethodGet, "/users/orders/"+url.PathEscape(userID), nil)
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, "delete_pet", http.MethodDelete, "/users/orders/"+url.PathEscape(id), nil, nil, nil)
}

// CreatePet posts the add-listing form as multipart. It returns the new id when the API reports one.
func (c *Client) CreatePet(ctx context.Context, form domain.ListingForm) (string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "create_pet", http.MethodPost, "/pets/new", nil, listingBody(form), &raw); err != nil {
		return "", err
	}
	var body struct {
		ID flexString `json:"id"`
	}
	if data := unwrapData(raw); classify(data) == shapeObject {
		_ = json.Unmarshal(data, &body)
	}
	return string(body.ID), nil
}

func (c *Client) UpdatePet(ctx context.Context, id string, form domain.ListingForm) error {
	return c.do(ctx, "update_pet", http.MethodPatch, "/pets/"+url.PathEscape(id), nil, listingBody(form), nil)
}

func listingBody(form domain.ListingForm) multipartBody {
	fields := [][2]string{
		{"name", form.Name},
		{"phone", form.Phone},
		{"email", form.Email},
		{"kind", form.Kind},
		{"district", form.District},
		{"description", form.Description},
	}
	if form.Mark != "" {
		fields = append(fields, [2]string{"mark", form.Mark})
	}
	fields = append(fields, [2]string{"confirm", strconv.Itoa(boolToInt(form.Confirm))})

	files := make(map[string]fileField, 3)
	for name, p := range map[string]*domain.Photo{"photo1": form.Photo1, "photo2": form.Photo2, "photo3": form.Photo3} {
		if p != nil && len(p.Data) > 0 {
			files[name] = fileField{name: p.FileName, data: p.Data}
		}
	}
	return multipartBody{fields: fields, files: files}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
