package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unish6123/StuNotes/models"
	"github.com/unish6123/StuNotes/utils"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// userIDKey is the gin context key holding the authenticated user's ID.
const userIDKey = "userID"

// Auth gatekeeps protected endpoints. The token is read from the session
// cookie, or from an Authorization: Bearer header as a fallback, and
// verified against the signing secret. No database lookup happens here;
// identity is trusted from the signature alone.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			if header := c.GetHeader("Authorization"); strings.HasPrefix(strings.ToLower(header), "bearer ") {
				tokenStr = strings.TrimSpace(header[len("bearer "):])
			}
		}
		if tokenStr == "" {
			unauthenticated(c)
			return
		}

		userID, err := utils.VerifyToken(secret, tokenStr)
		if err != nil {
			unauthenticated(c)
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(userIDKey, oid)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: "not authenticated",
	})
}

// UserID returns the authenticated user's ID set by Auth. The second result
// is false when the request did not pass through Auth.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, ok := v.(primitive.ObjectID)
	return oid, ok
}
