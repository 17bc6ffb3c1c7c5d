package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/account"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

const (
	ContextUserID  = "userID"
	ContextProfile = "userProfile"
)

// AuthMiddleware accepts HS256 access tokens issued by the identity
// provider; sub carries the auth user id.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextUserID, sub)
		c.Next()
	}
}

// bearerToken reads the Authorization header, or the access_token query
// parameter for EventSource clients that cannot set headers.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if t := c.Query("access_token"); t != "" {
			return t, true
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// ProfileMiddleware resolves the back-office profile of the authenticated
// user. Users without a provisioned profile are rejected.
func ProfileMiddleware(accounts account.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := accounts.GetUserInfo(c.Request.Context(), c.GetString(ContextUserID))
		if err != nil {
			if httperr.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile_not_provisioned"})
				return
			}
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextProfile, profile)
		c.Next()
	}
}

func Profile(c *gin.Context) *models.UserProfile {
	return c.MustGet(ContextProfile).(*models.UserProfile)
}
