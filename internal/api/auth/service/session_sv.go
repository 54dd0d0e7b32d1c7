package authService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/api/auth"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"time"
)

// Login checks password against the configured admin password and issues a
// session token for this automation.
func (s *authService) Login(ctx context.Context, password string, host string) (string, time.Time, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cfg, err := s.configs.CurrentConfig(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load configuration")
		return "", time.Time{}, auth.ErrConfigUnavailable
	}

	stored := cfg.String(entity.ConfigPassword)
	if stored == "" {
		return "", time.Time{}, auth.ErrLoginNotRequired
	}

	if !s.bcrypt.ComparePassword(stored, password) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"host":       host,
		}).Warn("Admin login with wrong password")
		return "", time.Time{}, auth.ErrInvalidPassword
	}

	if s.signer == nil {
		return "", time.Time{}, auth.ErrSessionNotConfigured
	}

	token, expiresAt, err := s.signer.Sign(cfg.String(entity.ConfigUniqueID), host)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign session token")
		return "", time.Time{}, auth.ErrCreateSession
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"host":       host,
		"expires_at": expiresAt,
	}).Info("Admin logged in")

	return token, expiresAt, nil
}

// Logout revokes token until its natural expiry. Unknown or already
// invalid tokens are ignored.
func (s *authService) Logout(ctx context.Context, token string, host string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if token == "" || s.signer == nil || s.revoked == nil {
		return nil
	}

	claims, err := s.signer.Verify(token, host)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Debug("Logout with an invalid token")
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl += time.Until(claims.ExpiresAt.Time)
	}

	if err := s.revoked.RevokeToken(ctx, claims.ID, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to revoke session token")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Admin logged out")

	return nil
}
