package middleware

import (
	"net/http"
	"os"
	"strings"

	"backend/internal/model"
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtSecret holds the signing key for session tokens, set via Init before
// the router is built.
var jwtSecret []byte

// Init sets the JWT signing key used by the session middleware.
func Init(secret []byte) {
	jwtSecret = secret
}

// Session is the authenticated identity extracted from a valid token.
type Session struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

const sessionKey = "session"

// CurrentSession returns the identity set by RequireAuth. The bool is false
// on routes that skipped authentication.
func CurrentSession(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// SetTokenCookie sets the access_token as an HttpOnly cookie
func SetTokenCookie(c *gin.Context, token string, maxAge int) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", token, maxAge, "/", "", secure, true)
}

// ClearTokenCookie removes the access_token cookie
func ClearTokenCookie(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
}

// resolveSession extracts and validates the session token from the cookie
// or the Authorization header, in that order.
func resolveSession(c *gin.Context) (Session, *apperror.Error) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return Session{}, apperror.Unauthenticated("authentication required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Session{}, apperror.Unauthenticated("invalid authorization format, expected 'Bearer <token>'")
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, apperror.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, apperror.Unauthenticated("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Session{}, apperror.Unauthenticated("invalid token claims")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		return Session{}, apperror.Unauthenticated("invalid token claims")
	}

	return Session{UserID: userID, Username: username, Role: role}, nil
}

func abortWith(c *gin.Context, err *apperror.Error) {
	status, body := response.FromError(err)
	c.AbortWithStatusJSON(status, body)
}

// RequireAuth validates the session token and stores the identity in the
// request context. It makes no role or permission check.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, appErr := resolveSession(c)
		if appErr != nil {
			abortWith(c, appErr)
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireRole validates the session and checks the caller's role against the
// allowed list.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, appErr := resolveSession(c)
		if appErr != nil {
			abortWith(c, appErr)
			return
		}

		allowed := false
		for _, role := range allowedRoles {
			if session.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			abortWith(c, apperror.Forbidden("access denied: insufficient role"))
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequirePermission validates the session and checks the caller's role grants
// the named permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, appErr := resolveSession(c)
		if appErr != nil {
			abortWith(c, appErr)
			return
		}

		if !model.RoleHas(session.Role, permission) {
			abortWith(c, apperror.Forbidden("access denied: missing permission '"+permission+"'"))
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}
