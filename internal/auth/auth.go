// Package auth issues and verifies the capability tokens that gate
// moderation decisions. A token is an opaque proof of the caller's role;
// nothing else about the session travels with it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Capability identifies the caller and the role their token proves.
type Capability struct {
	UserID uuid.UUID
	Role   models.Role
}

// CanModerate reports whether the caller may decide pending changes.
func (c Capability) CanModerate() bool {
	return c.Role == models.RoleAdmin || c.Role == models.RoleSuperAdmin
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a capability token for the given user and role.
func (i *Issuer) Issue(userID uuid.UUID, role models.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and extracts the capability it carries.
func (i *Issuer) Parse(tokenString string) (Capability, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Capability{}, ErrTokenExpired
		}
		return Capability{}, ErrInvalidToken
	}
	if !token.Valid {
		return Capability{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Capability{}, ErrInvalidToken
	}

	role := models.Role(c.Role)
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return Capability{}, ErrInvalidToken
	}

	return Capability{UserID: userID, Role: role}, nil
}
