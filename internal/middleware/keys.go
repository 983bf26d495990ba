package middleware

// gin context keys shared between middleware and handlers.
const (
	UserIDKey           = "user_id"
	ValidatedUserIDKey  = "user_id_validated"
	RequestIDKey        = "request_id"
	IdempotencyLockKey  = "idempotency_lock_key"
	IdempotencyCacheKey = "idempotency_cache_key"
)
