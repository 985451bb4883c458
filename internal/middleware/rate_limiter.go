package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry tracks request counts per IP within a sliding window.
type windowEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginMap   = make(map[string]*windowEntry)
	loginMapMu sync.Mutex

	apiMap   = make(map[string]*windowEntry)
	apiMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 10 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limit(loginMap, &loginMapMu, 10, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
}

// RateLimiter is the general sliding-window limiter for the API.
func RateLimiter(max int, window time.Duration) gin.HandlerFunc {
	return limit(apiMap, &apiMapMu, max, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func limit(m map[string]*windowEntry, mapMu *sync.Mutex, max int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mapMu.Lock()
		entry, exists := m[ip]
		if !exists {
			entry = &windowEntry{}
			m[ip] = entry
		}
		mapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > max {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

const purgeInterval = 5 * time.Minute

// Expired entries are purged in the background so IPs that never
// return do not accumulate forever.
func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purged := purgeMap(loginMap, &loginMapMu) + purgeMap(apiMap, &apiMapMu)
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}

func purgeMap(m map[string]*windowEntry, mapMu *sync.Mutex) int {
	now := time.Now()
	purged := 0

	mapMu.Lock()
	defer mapMu.Unlock()
	for ip, entry := range m {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(m, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}
