// File: utils/constants.go
package utils

import "time"

// AgendaCachePrefix is the prefix used for Redis day-agenda cache keys.
const AgendaCachePrefix = "agenda:"

// AgendaCacheTTL is the time-to-live for cached day agendas. Writes
// invalidate the key eagerly; the TTL only bounds staleness on misses.
const AgendaCacheTTL = 5 * time.Minute
