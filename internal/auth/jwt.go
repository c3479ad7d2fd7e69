package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/shophub/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// SessionTokens signs and verifies the persisted session value.
// The token carries the password-free user fields, so a restored session needs
// no lookup in the user collection.
type SessionTokens struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID        string `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	UserCreatedAt int64  `json:"user_created_at"`
	jwt.RegisteredClaims
}

// NewSessionTokens creates a token signer with the given secret and lifetime.
// A lifetime of zero issues tokens that never expire.
func NewSessionTokens(secretKey string, tokenDuration time.Duration) *SessionTokens {
	return &SessionTokens{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Generate creates a signed token for the given session user.
func (m *SessionTokens) Generate(user *models.SessionUser) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:        user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		UserCreatedAt: user.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if m.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and verifies a token, returning the session user it carries.
func (m *SessionTokens) Validate(tokenString string) (*models.SessionUser, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &models.SessionUser{
		ID:        claims.UserID,
		FullName:  claims.FullName,
		Email:     claims.Email,
		CreatedAt: claims.UserCreatedAt,
	}, nil
}
