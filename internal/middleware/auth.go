package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

type actorContextKey struct{}

// Claims - полезная нагрузка токена сессии.
type Claims struct {
	ProfileID string          `json:"profileId"`
	Role      models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает подписанный токен сессии для профиля.
func GenerateToken(secret string, profile *models.Profile, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ProfileID: profile.ID,
		Role:      profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AuthMiddleware проверяет токен сессии и кладет идентичность в контекст.
type AuthMiddleware struct {
	secret string
	logger *log.Logger
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware.
func NewAuthMiddleware(secret string, logger *log.Logger) *AuthMiddleware {
	return &AuthMiddleware{secret: secret, logger: logger}
}

// WithAuth оборачивает обработчик проверкой заголовка Authorization.
func (m *AuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid Authorization header format")
			return
		}

		claims, err := m.validateToken(parts[1])
		if err != nil {
			m.logger.Println("token validation failed:", err)
			utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		actor := models.Actor{ID: claims.ProfileID, Role: claims.Role}
		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next(w, r.WithContext(ctx))
	}
}

// validateToken разбирает и проверяет токен сессии.
func (m *AuthMiddleware) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.secret), nil
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

// ActorFromContext извлекает идентичность из контекста запроса.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(models.Actor)
	return actor, ok
}
