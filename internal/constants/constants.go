package constants

// Context keys
const (
	ContextKeyAdminClaims = "admin_claims"
	ContextKeyRequestID   = "request_id"
)

// HTTP headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
