package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
)

var (
	ErrNoToken   = errors.New("login response carries no token")
	ErrNoProfile = errors.New("response carries no user profile")
)

// Me is the identity check: it returns the profile owning the token in ctx.
func (c *Client) Me(ctx context.Context) (domain.UserProfile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "me", http.MethodGet, "/users", nil, nil, &raw); err != nil {
		return domain.UserProfile{}, err
	}
	profile, ok := decodeUser(raw)
	if !ok {
		return domain.UserProfile{}, &Error{Status: http.StatusOK, Message: ErrNoProfile.Error(), Err: ErrNoProfile}
	}
	return profile, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "login", http.MethodPost, "/login", nil, jsonBody{creds}, &raw); err != nil {
		return "", err
	}
	token := decodeToken(raw)
	if token == "" {
		return "", &Error{Status: http.StatusOK, Message: ErrNoToken.Error(), Err: ErrNoToken}
	}
	return token, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, "register", http.MethodPost, "/register", nil, jsonBody{reg}, nil)
}

func (c *Client) UpdatePhone(ctx context.Context, userID, phone string) error {
	path := "/users/" + url.PathEscape(userID) + "/phone"
	return c.do(ctx, "update_phone", http.MethodPatch, path, nil, jsonBody{map[string]string{"phone": phone}}, nil)
}

func (c *Client) UpdateEmail(ctx context.Context, userID, email string) error {
	path := "/users/" + url.PathEscape(userID) + "/email"
	return c.do(ctx, "update_email", http.MethodPatch, path, nil, jsonBody{map[string]string{"email": email}}, nil)
}

func (c *Client) Subscribe(ctx context.Context, email string) error {
	return c.do(ctx, "subscribe", http.MethodPost, "/subscription", nil, jsonBody{map[string]string{"email": email}}, nil)
}
