package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
)

const claimsContextKey = "session_claims"

// SessionClaims are the JWT claims carried by an authenticated session
type SessionClaims struct {
	Nombre   string   `json:"nombre"`
	Rol      string   `json:"rol"`
	Permisos []string `json:"permisos"`
	jwt.RegisteredClaims
}

// HasModule checks whether the session may access the given module id
func (c *SessionClaims) HasModule(moduleID string) bool {
	for _, m := range c.Permisos {
		if m == moduleID {
			return true
		}
	}
	return false
}

// IssueToken signs a session token for the given user, valid for 12 hours
func IssueToken(cfg *config.Config, user *models.User) (string, error) {
	claims := SessionClaims{
		Nombre:   user.Nombre,
		Rol:      user.Rol,
		Permisos: user.Permisos,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// EnsureValidToken is a middleware that checks the validity of the session JWT
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header with bearer token is required",
				},
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Failed to validate session token",
				},
			})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetUserID extracts the authenticated user's id from the request context
func GetUserID(c *gin.Context) (string, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GetClaims extracts the validated session claims from the request context
func GetClaims(c *gin.Context) (*SessionClaims, error) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, &AuthError{Code: "NO_CLAIMS", Message: "No session claims found in request context"}
	}
	claims, ok := value.(*SessionClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Session claims have unexpected type"}
	}
	return claims, nil
}

// SetClaimsForTesting injects session claims into the request context
// (primarily for controller tests that bypass the middleware)
func SetClaimsForTesting(c *gin.Context, claims *SessionClaims) {
	c.Set(claimsContextKey, claims)
}

// RequireRole rejects requests whose session does not carry one of the
// given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err == nil {
			for _, role := range roles {
				if claims.Rol == role {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// RequireModule rejects requests whose session lacks the given module
// permission. Admins pass regardless of their permiso list.
func RequireModule(moduleID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err == nil && (claims.Rol == models.RoleAdmin || claims.HasModule(moduleID)) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Module access is not permitted for this user",
			},
		})
	}
}

// AuthError represents an authentication context error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
