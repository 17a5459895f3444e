package redisx

import "time"

const (
	// Cached JSON body of GET /products.
	KeyProductsCache = "catalogo:productos"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Daily sales aggregates for the dashboard: dash:daily:{yyyy-mm-dd}
	KeyDailyStats = "dash:daily:%s"
)

var (
	TTLProductsCache = time.Minute
	TTLDedup         = 48 * time.Hour
	TTLDailyStats    = 45 * 24 * time.Hour
)
