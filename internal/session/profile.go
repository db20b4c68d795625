package session

import (
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/validation"
	"github.com/golang-jwt/jwt/v5"
)

// Credentials classifies the identifier: anything with "@" is an email,
// everything else a phone number.
func Credentials(identifier, password string) domain.Credentials {
	identifier = strings.TrimSpace(identifier)
	if validation.IsEmail(identifier) {
		return domain.Credentials{Email: identifier, Password: password}
	}
	return domain.Credentials{Phone: identifier, Password: password}
}

func minimalProfile(creds domain.Credentials) domain.UserProfile {
	return domain.UserProfile{Email: creds.Email, Phone: creds.Phone}
}

// mergeProfile overlays the fresh server profile on the cached one; empty
// server fields keep the cached value.
func mergeProfile(cached *domain.UserProfile, fresh domain.UserProfile) domain.UserProfile {
	if cached == nil {
		return fresh
	}
	out := *cached
	if fresh.ID != "" {
		out.ID = fresh.ID
	}
	if fresh.Name != "" {
		out.Name = fresh.Name
	}
	if fresh.Phone != "" {
		out.Phone = fresh.Phone
	}
	if fresh.Email != "" {
		out.Email = fresh.Email
	}
	if fresh.RegistrationDate != "" {
		out.RegistrationDate = fresh.RegistrationDate
	}
	if fresh.OrdersCount != nil {
		out.OrdersCount = fresh.OrdersCount
	}
	if fresh.PetsCount != nil {
		out.PetsCount = fresh.PetsCount
	}
	return out
}

func applyPatch(u *domain.UserProfile, p domain.ProfilePatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// tokenExpired looks inside JWT bearer tokens without verifying them.
// Opaque tokens are never considered expired here; the API decides.
func tokenExpired(token string, now time.Time) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Before(now), exp.Time
}
