package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// DefaultSkipPaths are never logged: assets and browser noise.
var DefaultSkipPaths = []string{"/static/**", "/images/**", "/favicon*"}

// RequestLogger logs one line per request. Client IPs are only ever written
// as salted hashes, and requests carrying "DNT: 1" are logged without one.
type RequestLogger struct {
	log  logrus.FieldLogger
	salt string
	skip []glob.Glob
}

// NewRequestLogger compiles the skip patterns (gobwas/glob syntax, '/' as
// separator).
func NewRequestLogger(log logrus.FieldLogger, salt string, skipPaths []string) (*RequestLogger, error) {
	rl := &RequestLogger{log: log, salt: salt}
	for _, pattern := range skipPaths {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		rl.skip = append(rl.skip, g)
	}
	return rl, nil
}

// HashIP hashes an address with the logger's salt. Consistent per IP, so
// repeated visits correlate without the address being stored.
func (rl *RequestLogger) HashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + rl.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Skipped reports whether path matches one of the skip patterns.
func (rl *RequestLogger) Skipped(path string) bool {
	for _, g := range rl.skip {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Middleware returns the gin handler.
func (rl *RequestLogger) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if rl.Skipped(path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		// Respect Do Not Track header
		if c.GetHeader("DNT") != "1" {
			fields["client"] = rl.HashIP(c.ClientIP())
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := rl.log.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
