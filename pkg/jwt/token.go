package jwtPkg

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

const (
	Audience       = "urn:automations:id"
	CookieName     = "autotoken"
	DefaultTTL     = 2 * time.Hour
	clockTolerance = time.Minute
	secretEnvKey   = "JWT_ACCESS_TOKEN_SECRET"
)

var ErrSecretNotSet = errors.New("JWT_ACCESS_TOKEN_SECRET not set")

type Claims struct {
	AutomationID string `json:"urn:automations:id"`
	jwt.RegisteredClaims
}

type ITokenSigner interface {
	Sign(automationID string, host string) (string, time.Time, error)
	Verify(token string, host string) (*Claims, error)
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

func New() (ITokenSigner, error) {
	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, ErrSecretNotSet
	}
	return NewWithSecret([]byte(secret), DefaultTTL), nil
}

func NewWithSecret(secret []byte, ttl time.Duration) ITokenSigner {
	return &signer{secret: secret, ttl: ttl}
}

// Sign issues a session token bound to the requesting host, so a cookie
// minted for one deployment is rejected by another.
func (s *signer) Sign(automationID string, host string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		AutomationID: automationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Issuer:    host,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *signer) Verify(token string, host string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(host),
		jwt.WithAudience(Audience),
		jwt.WithLeeway(clockTolerance),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		logrus.WithError(err).Debug("Failed to verify token")
		return nil, err
	}

	return claims, nil
}
