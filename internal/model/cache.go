package model

// CacheEntry is a row of the request_cache table
type CacheEntry struct {
	Key       string `db:"cache_key"`
	Payload   []byte `db:"payload"`
	ExpiresAt int64  `db:"expires_at"` // unix nanoseconds; zero = no expire
	UpdatedAt int64  `db:"updated_at"`
}

// Expired reports whether the entry is past its expiry at now (unix nanoseconds)
func (e CacheEntry) Expired(now int64) bool {
	return e.ExpiresAt > 0 && now > e.ExpiresAt
}
