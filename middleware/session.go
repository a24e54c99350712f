package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "cart_session"
	// one day, same lifetime as the cart entries keyed by it
	sessionMaxAge = 24 * 60 * 60

	// SessionKey is where handlers read the cart session id from the context.
	SessionKey = "session_id"
)

// CartSession assigns a session id cookie to first-time visitors and exposes
// the id on the request context.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(SessionKey, sid)
		c.Next()
	}
}

// SessionID returns the cart session id for the request.
func SessionID(c *gin.Context) string {
	sid, _ := c.Get(SessionKey)
	if s, ok := sid.(string); ok {
		return s
	}
	return ""
}
