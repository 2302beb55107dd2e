package constants

const (
	// ContextKeyPrincipal holds the verified email of the caller.
	ContextKeyPrincipal = "principal_email"
	// ContextKeyRequestID holds the per-request correlation id.
	ContextKeyRequestID = "request_id"
	// ContextKeyUser holds the *models.User resolved from the principal.
	ContextKeyUser = "current_user"
	// ContextKeyResourceID holds the parsed :id route parameter.
	ContextKeyResourceID = "resource_id"

	HeaderRequestID = "X-Request-ID"
)

// Pagination
const (
	DefaultPage     = 0
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
	MinUsernameLength = 3
	MaxUsernameLength = 50
)
