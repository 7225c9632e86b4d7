package utils

// Gin context keys set by the auth and request id middlewares.
const (
	LoggerContextKey    = "logger"
	RequestIDContextKey = "requestID"
	ClaimsContextKey    = "claims"
	TokenContextKey     = "bearerToken"
)

// Redis key prefixes.
const (
	GridSessionPrefix = "grid:"
	DraftPrefix       = "draft:"
	RequestListPrefix = "requests:"
)
