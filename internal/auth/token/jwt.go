package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"healthlink/internal/auth"
	dErrors "healthlink/pkg/domain-errors"
)

const (
	issuer   = "healthlink"
	audience = "healthlink-web"
)

// jwtClaims embeds the session claims into the registered JWT claims.
type jwtClaims struct {
	auth.Claims
	jwt.RegisteredClaims
}

// Service signs and validates session tokens. Tokens are stateless: all
// session attributes travel inside the token and no server-side record
// exists to revoke.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

// Issue signs a token carrying the given session claims.
func (s *Service) Issue(claims auth.Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  []string{audience},
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate parses a token string and returns the session claims it carries.
func (s *Service) Validate(tokenString string) (auth.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return auth.Claims{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims.Claims, nil
}
