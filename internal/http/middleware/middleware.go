package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OwnerIDHeader carries the acting owner's id on every catalog request.
// Authentication itself is handled upstream; this service only scopes data.
const OwnerIDHeader = "X-Owner-ID"

const ownerIDKey = "ownerID"

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
// instead of crashing the server.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Panic recovered",
					slog.Any("error", err),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// CORS allows the catalog frontend to call the API from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+OwnerIDHeader)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Logger logs one line per request with method, path, status and duration.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// RequireOwner parses the owner id header and aborts with 400 when it is
// missing or malformed. Handlers read the id back via OwnerID.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + OwnerIDHeader + " header"})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + OwnerIDHeader + " header"})
			return
		}

		c.Set(ownerIDKey, id)
		c.Next()
	}
}

// OwnerID returns the owner id set by RequireOwner.
func OwnerID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ownerIDKey)
	ownerID, _ := id.(uuid.UUID)
	return ownerID
}
