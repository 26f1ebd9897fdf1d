package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/config"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

// UserVerifier confirma que o dono do token ainda existe antes de aceitar a
// requisição.
type UserVerifier interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

type JwtService struct {
	secret     []byte
	expiration time.Duration
	users      UserVerifier
}

func NewJwtService(cfg config.JWTConfig, users UserVerifier) *JwtService {
	return &JwtService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		users:      users,
	}
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return signed, nil
}

func (s *JwtService) ValidateToken(tokenString string) (ulid.ULID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(claims.Subject)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}
	return userID, nil
}

// AuthMiddleware valida o bearer token e injeta o user_id no contexto da
// requisição.
func (s *JwtService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Token de autenticação não fornecido")
			return
		}

		userID, err := s.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "Token inválido ou expirado")
			return
		}

		if s.users != nil {
			if err := s.users.Exists(c.Request.Context(), userID); err != nil {
				abortUnauthorized(c, "Usuário não encontrado")
				return
			}
		}

		c.Set("user_id", userID.String())
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":   appErrors.ErrUnauthorized.Code,
		"message": message,
	})
	c.Abort()
}
