package domain

type UserProfile struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	RegistrationDate      string `json:"registrationDate"`
	DaysSinceRegistration int    `json:"daysSinceRegistration"`
	OrdersCount           *int   `json:"ordersCount,omitempty"`
	PetsCount             *int   `json:"petsCount,omitempty"`
}

// Session is the auth state. IsLoggedIn == (Token != "").
type Session struct {
	IsLoggedIn bool         `json:"isLoggedIn"`
	Token      string       `json:"-"`
	User       *UserProfile `json:"user,omitempty"`
}

// Credentials are sent to the login endpoint. Exactly one of Email/Phone is set.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type Registration struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Confirm              bool   `json:"confirm"`
}

// ProfilePatch carries the fields a user wants to change. Nil means unchanged.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}
