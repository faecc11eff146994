package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/pkg/clock"
)

// accessClaims is the JWT payload: {sub, id, role, iat, exp}.
type accessClaims struct {
	UserID int64       `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 access tokens signed with one
// process-wide secret. It holds no mutable state.
type TokenCodec struct {
	secret []byte
	clock  clock.Clock
	parser *jwt.Parser
}

func NewTokenCodec(secret string, clk clock.Clock) *TokenCodec {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &TokenCodec{
		secret: []byte(secret),
		clock:  clk,
		// Expiry is checked by Verify so the boundary is inclusive and a
		// bad signature is reported before an elapsed exp.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Issue signs a token for the given subject that expires ttl from now. The
// exp claim has whole-second precision, so it is rounded up.
func (c *TokenCodec) Issue(subjectID int64, username string, role domain.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	now := c.clock.Now()
	exp := now.Add(ttl)
	if whole := exp.Truncate(time.Second); !whole.Equal(exp) {
		exp = whole.Add(time.Second)
	}
	claims := accessClaims{
		UserID: subjectID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry of token and returns its claims.
func (c *TokenCodec) Verify(token string) (domain.Claims, error) {
	var claims accessClaims
	parsed, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.Subject == "" || claims.UserID <= 0 || !claims.Role.Valid() {
		return domain.Claims{}, domain.ErrInvalidToken.WithCause(jwt.ErrTokenInvalidClaims)
	}
	if !c.clock.Now().Before(claims.ExpiresAt.Time) {
		return domain.Claims{}, domain.ErrExpiredToken.WithCause(jwt.ErrTokenExpired)
	}
	return domain.Claims{
		SubjectID: claims.UserID,
		Username:  claims.Subject,
		Role:      claims.Role,
	}, nil
}
