package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/bbs-service/internal/domain/dto"
	"github.com/guttosm/bbs-service/internal/i18n"
)

// ActorKey is the gin context key holding the authenticated caller's name.
const ActorKey = "actor"

// RoleAdmin is the role that may change rate cards.
const RoleAdmin = "admin"

var errInvalidSigningMethod = errors.New("invalid signing method")

// Claims are the JWT claims accepted by AdminJWT.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return slices.Contains(c.Roles, RoleAdmin)
}

// Actor returns the name recorded in audit entries for the token holder.
func (c *Claims) Actor() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// NewToken signs an HS256 token for subject with the given roles.
func NewToken(secret []byte, subject, email string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates tokenString against secret and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSigningMethod
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AdminJWT returns a middleware that requires a bearer token carrying the admin role.
// With an empty secret every request is refused, so admin routes stay closed until configured.
func AdminJWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}
		if !claims.IsAdmin() {
			abortWith(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}

		c.Set(ActorKey, claims.Actor())
		c.Next()
	}
}

// GetActor returns the authenticated caller's name, or "" for anonymous requests.
func GetActor(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(string); ok {
			return actor
		}
	}
	return ""
}

func abortWith(c *gin.Context, status int, code, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}
