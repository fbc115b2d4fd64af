package middleware

import (
	"net/http"
	"strings"

	"ideamatch/internal/domain/entity"
	"ideamatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the authentication middleware.
const (
	KeyUserID    = "userID"
	KeyUserEmail = "userEmail"
	KeyUserRole  = "userRole"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and stores the caller's identity
// on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": errMsg})
		}

		claims, err := m.tokenSvc.VerifyAccessToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		setIdentity(c, claims)

		return next(c)
	}
}

// AuthenticateRefresh validates a refresh-signed token from the
// Authorization header. It proves identity only; whether the token is still
// the account's live session is decided against the stored hash.
func (m *AuthMiddleware) AuthenticateRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": errMsg})
		}

		claims, err := m.tokenSvc.VerifyRefreshToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		setIdentity(c, claims)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(KeyUserRole).(entity.Role)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole.String() + "' role"})
			}

			return next(c)
		}
	}
}

// UserID extracts the authenticated account ID stored by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(KeyUserID).(uuid.UUID)

	return id, ok
}

// bearerToken extracts the Bearer credential; a non-empty second return is
// the client-facing failure message.
func bearerToken(c echo.Context) (string, string) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header is missing"
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", "Invalid token format, must be Bearer token"
	}

	return tokenString, ""
}

func setIdentity(c echo.Context, claims *service.Claims) {
	c.Set(KeyUserID, claims.UserID)
	c.Set(KeyUserEmail, claims.Email)
	c.Set(KeyUserRole, claims.Role)
}
