package domain

type PetStatus string

const (
	StatusActive       PetStatus = "active"
	StatusOnModeration PetStatus = "onModeration"
	StatusWasFound     PetStatus = "wasFound"
	StatusArchive      PetStatus = "archive"
)

// Mutable reports whether the owner may still edit or delete a listing in this status.
func (s PetStatus) Mutable() bool {
	return s == StatusActive || s == StatusOnModeration
}

// Pet is a single lost-and-found listing. Image and Photos always hold
// absolute URLs once the listing has passed through the API client.
type Pet struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	District    string    `json:"district"`
	Mark        string    `json:"mark,omitempty"`
	Date        string    `json:"date"`
	Image       string    `json:"image"`
	Photos      []string  `json:"photos"`
	Status      PetStatus `json:"status"`

	// Owner contacts
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Filters is the advanced search form. Empty values mean "any".
type Filters struct {
	District string `json:"district"`
	Kind     string `json:"kind"`
}

// Query returns only the non-empty filter keys.
func (f Filters) Query() map[string]string {
	q := make(map[string]string, 2)
	if f.District != "" {
		q["district"] = f.District
	}
	if f.Kind != "" {
		q["kind"] = f.Kind
	}
	return q
}

func (f Filters) IsZero() bool {
	return f.District == "" && f.Kind == ""
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
}

// TotalPagesFor returns ceil(n / perPage).
func TotalPagesFor(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// ListingForm is the add/update listing form. Photo1 is mandatory on create.
type ListingForm struct {
	Name        string
	Phone       string
	Email       string
	Kind        string
	District    string
	Mark        string
	Description string
	Photo1      *Photo
	Photo2      *Photo
	Photo3      *Photo
	Confirm     bool
}

// Photo is an image file picked by the user.
type Photo struct {
	FileName string
	Data     []byte
}
