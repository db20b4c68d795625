package middleware

// ContextKey keeps our context values apart from other packages' keys.
type ContextKey string

const (
	// UserIDCtxKey holds the id of the signed-in user on protected routes.
	UserIDCtxKey = ContextKey("user_id")
)
