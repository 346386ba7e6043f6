package constants

import "time"

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyToken       = "session_token"
	ContextKeyRequestID   = "request_id"
)

// Session settings
const (
	SessionCookieName     = "family_session"
	SessionKeyCredential  = "credential"
	BearerPrefix          = "Bearer "
	SessionTokenBytes     = 32
	DefaultSessionTTL     = 7 * 24 * time.Hour
	MaxTokenGenerateTries = 3
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxUsernameLength = 50
)

// RelationshipTypes is the closed set of relationship types, in display order.
var RelationshipTypes = []string{"father", "mother", "brother", "sister", "husband", "wife"}
