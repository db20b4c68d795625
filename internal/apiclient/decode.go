package apiclient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
)

// The listings API answers the same resource in several envelopes
// ({data:{orders:[...]}}, {pets:[...]}, {pet:[{...}]}, {order:{...}}, bare
// objects and bare arrays). Everything is classified here, once, into the
// canonical domain types. Unknown shapes decode to nothing.

type shape int

const (
	shapeUnknown shape = iota
	shapeArray
	shapeObject
)

func classify(raw json.RawMessage) shape {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return shapeUnknown
	}
	switch trimmed[0] {
	case '[':
		return shapeArray
	case '{':
		return shapeObject
	default:
		return shapeUnknown
	}
}

// unwrapData strips a top-level {"data": ...} envelope if there is one.
func unwrapData(raw json.RawMessage) json.RawMessage {
	if classify(raw) != shapeObject {
		return raw
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if data, ok := env["data"]; ok && classify(data) != shapeUnknown {
		return data
	}
	return raw
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// flexStrings accepts a single string, an array of strings or null.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	switch classify(b) {
	case shapeArray:
		var items []flexString
		if err := json.Unmarshal(b, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				out = append(out, string(it))
			}
		}
		*f = out
	default:
		var s flexString
		if err := json.Unmarshal(b, &s); err != nil || s == "" {
			*f = nil
			return nil
		}
		*f = flexStrings{string(s)}
	}
	return nil
}

type flexInt struct {
	val *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(string(s))); err == nil {
		f.val = &n
	}
	return nil
}

type rawPet struct {
	ID          flexString  `json:"id"`
	Kind        string      `json:"kind"`
	Description string      `json:"description"`
	District    string      `json:"district"`
	Mark        flexString  `json:"mark"`
	Date        string      `json:"date"`
	Image       flexString  `json:"image"`
	Photos      flexStrings `json:"photos"`
	Photo1      flexString  `json:"photo1"`
	Photo2      flexString  `json:"photo2"`
	Photo3      flexString  `json:"photo3"`
	Status      string      `json:"status"`
	Name        string      `json:"name"`
	Phone       flexString  `json:"phone"`
	Email       string      `json:"email"`
}

var petListKeys = []string{"orders", "pets", "pet", "order"}

// decodePets accepts every listing envelope the API is known to produce.
func decodePets(raw json.RawMessage) []rawPet {
	raw = unwrapData(raw)
	switch classify(raw) {
	case shapeArray:
		var list []rawPet
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return list
	case shapeObject:
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}
		for _, key := range petListKeys {
			if inner, ok := env[key]; ok {
				return decodePets(inner)
			}
		}
		if _, ok := env["id"]; ok {
			var one rawPet
			if err := json.Unmarshal(raw, &one); err != nil {
				return nil
			}
			return []rawPet{one}
		}
	}
	return nil
}

func (c *Client) toPet(r rawPet) domain.Pet {
	photos := make([]string, 0, len(r.Photos)+3)
	photos = append(photos, r.Photos...)
	for _, p := range []flexString{r.Photo1, r.Photo2, r.Photo3} {
		if p != "" {
			photos = append(photos, string(p))
		}
	}
	image, resolved := c.resolver.ResolvePet(string(r.Image), photos)

	return domain.Pet{
		ID:          string(r.ID),
		Kind:        r.Kind,
		Description: r.Description,
		District:    r.District,
		Mark:        string(r.Mark),
		Date:        r.Date,
		Image:       image,
		Photos:      resolved,
		Status:      domain.PetStatus(r.Status),
		Name:        r.Name,
		Phone:       string(r.Phone),
		Email:       r.Email,
	}
}

func (c *Client) toPets(raws []rawPet) []domain.Pet {
	pets := make([]domain.Pet, 0, len(raws))
	for _, r := range raws {
		pets = append(pets, c.toPet(r))
	}
	return pets
}

type rawUser struct {
	ID                    flexString `json:"id"`
	Name                  string     `json:"name"`
	Phone                 flexString `json:"phone"`
	Email                 string     `json:"email"`
	RegistrationDate      string     `json:"registrationDate"`
	RegistrationDateSnake string     `json:"registration_date"`
	CreatedAt             string     `json:"created_at"`
	OrdersCount           flexInt    `json:"ordersCount"`
	PetsCount             flexInt    `json:"petsCount"`
}

// decodeUser accepts {data:{user:{...}}}, {user:{...}}, {data:[{...}]} and bare objects.
func decodeUser(raw json.RawMessage) (domain.UserProfile, bool) {
	raw = unwrapData(raw)
	switch classify(raw) {
	case shapeArray:
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return domain.UserProfile{}, false
		}
		return decodeUser(list[0])
	case shapeObject:
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return domain.UserProfile{}, false
		}
		if inner, ok := env["user"]; ok {
			return decodeUser(inner)
		}
		var u rawUser
		if err := json.Unmarshal(raw, &u); err != nil {
			return domain.UserProfile{}, false
		}
		if u.ID == "" && u.Email == "" && u.Phone == "" {
			return domain.UserProfile{}, false
		}
		reg := u.RegistrationDate
		if reg == "" {
			reg = u.RegistrationDateSnake
		}
		if reg == "" {
			reg = u.CreatedAt
		}
		return domain.UserProfile{
			ID:               string(u.ID),
			Name:             u.Name,
			Phone:            string(u.Phone),
			Email:            u.Email,
			RegistrationDate: reg,
			OrdersCount:      u.OrdersCount.val,
			PetsCount:        u.PetsCount.val,
		}, true
	}
	return domain.UserProfile{}, false
}

// decodeToken accepts {data:{token}} and {token}.
func decodeToken(raw json.RawMessage) string {
	raw = unwrapData(raw)
	var body struct {
		Token flexString `json:"token"`
	}
	if classify(raw) != shapeObject || json.Unmarshal(raw, &body) != nil {
		return ""
	}
	return string(body.Token)
}

var suggestionKeys = []string{"suggestions", "keywords", "kinds"}

// decodeSuggestions accepts {suggestions}, {keywords}, {kinds} and bare arrays.
func decodeSuggestions(raw json.RawMessage) []string {
	raw = unwrapData(raw)
	switch classify(raw) {
	case shapeArray:
		var list flexStrings
		_ = json.Unmarshal(raw, &list)
		return list
	case shapeObject:
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil
		}
		for _, key := range suggestionKeys {
			if inner, ok := env[key]; ok {
				return decodeSuggestions(inner)
			}
		}
	}
	return nil
}

// decodeError pulls the human message and field errors out of an error body.
// Known shapes: {message}, {error:"..."}, {error:{message, errors}}, {errors:{field:[...]}}.
func decodeError(raw []byte) (string, map[string][]string) {
	if classify(raw) != shapeObject {
		return "", nil
	}
	var env struct {
		Message flexString                 `json:"message"`
		Error   json.RawMessage            `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil
	}

	msg := string(env.Message)
	fields := decodeFieldErrors(env.Errors)

	switch classify(env.Error) {
	case shapeObject:
		innerMsg, innerFields := decodeError(env.Error)
		if msg == "" {
			msg = innerMsg
		}
		if len(fields) == 0 {
			fields = innerFields
		}
	case shapeUnknown:
		var s flexString
		if len(env.Error) > 0 && s.UnmarshalJSON(env.Error) == nil && msg == "" {
			msg = string(s)
		}
	}
	return msg, fields
}

func decodeFieldErrors(in map[string]json.RawMessage) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for field, raw := range in {
		var msgs flexStrings
		if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
			out[field] = msgs
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
