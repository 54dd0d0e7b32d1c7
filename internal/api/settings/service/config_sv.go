package settingsService

import (
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"golang.org/x/net/context"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
	"intentbot/internal/api/settings"
	settingsRepository "intentbot/internal/api/settings/repository"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"math"
	"os"
	"strings"
	"time"
)

// CurrentConfig returns the stored document, or an empty one when nothing
// has been stored yet.
func (s *settingsService) CurrentConfig(ctx context.Context) (entity.Config, error) {
	repo, err := s.settingsRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	cfg, err := repo.Config.GetConfig(ctx)
	if errors.Is(err, settingsRepository.ErrConfigMissing) {
		return entity.Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap seeds the stored document from a YAML file on first start and
// makes sure it carries a unique id and a hashed password.
func (s *settingsService) Bootstrap(ctx context.Context, path string) (entity.Config, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.settingsRepo.NewClient(true)
	if err != nil {
		return nil, err
	}
	defer repo.Rollback()

	cfg, err := repo.Config.GetConfig(ctx)
	seeded := false
	if errors.Is(err, settingsRepository.ErrConfigMissing) {
		cfg, err = loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		seeded = true
	} else if err != nil {
		return nil, err
	}

	changed := seeded
	if cfg.String(entity.ConfigUniqueID) == "" {
		cfg[entity.ConfigUniqueID] = s.utils.NewID()
		changed = true
	}

	if password := cfg.String(entity.ConfigPassword); password != "" && !s.bcrypt.IsHash(password) {
		hashed, err := s.bcrypt.HashPassword(password)
		if err != nil {
			return nil, err
		}
		cfg[entity.ConfigPassword] = hashed
		changed = true
	}

	if changed {
		if err := repo.Config.SaveConfig(ctx, cfg, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"unique_id":  cfg.String(entity.ConfigUniqueID),
		"seeded":     seeded,
		"file":       path,
	}).Info("Configuration ready")

	return cfg, nil
}

func loadConfigFile(path string) (entity.Config, error) {
	cfg := entity.Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for k, v := range raw {
		cfg[k] = v
	}

	return cfg, nil
}

func (s *settingsService) GetConfig(ctx context.Context) (*settings.ConfigResponse, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to load configuration")
		return nil, settings.ErrConfigUnavailable
	}

	return makeConfigResponse(cfg), nil
}

// UpdateConfig merges req into the stored document. The unique id is fixed,
// a redacted or empty password keeps the stored hash.
func (s *settingsService) UpdateConfig(ctx context.Context, req settings.UpdateConfigRequest) (*settings.ConfigResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	repo, err := s.settingsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	cfg, err := repo.Config.GetConfig(ctx)
	if errors.Is(err, settingsRepository.ErrConfigMissing) {
		cfg = entity.Config{}
	} else if err != nil {
		return nil, settings.ErrConfigUnavailable
	}

	for key, value := range req {
		switch {
		case key == entity.ConfigUniqueID:
			continue
		case value == nil:
			delete(cfg, key)
		case key == entity.ConfigPassword:
			password := cast.ToString(value)
			if password == "" || password == settings.RedactedValue {
				continue
			}
			hashed, err := s.bcrypt.HashPassword(password)
			if err != nil {
				return nil, settings.ErrSaveConfig
			}
			cfg[key] = hashed
		default:
			cfg[key] = value
		}
	}

	if cfg.String(entity.ConfigUniqueID) == "" {
		cfg[entity.ConfigUniqueID] = s.utils.NewID()
	}

	if err := repo.Config.SaveConfig(ctx, cfg, time.Now().UTC()); err != nil {
		return nil, settings.ErrSaveConfig
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, settings.ErrSaveConfig
	}

	keys := make([]string, 0, len(req))
	for key := range req {
		keys = append(keys, key)
	}
	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"keys":       strings.Join(keys, ","),
	}).Info("Configuration updated")

	return makeConfigResponse(cfg), nil
}

func validateUpdate(req settings.UpdateConfigRequest) error {
	if raw, ok := req[entity.ConfigScore]; ok && raw != nil {
		score, err := cast.ToFloat64E(raw)
		if err != nil || math.IsNaN(score) || score < 0 || score > 1 {
			return fmt.Errorf("%w: score must be a number between 0 and 1", settings.ErrInvalidConfig)
		}
	}

	for _, key := range []string{entity.ConfigMessage, entity.ConfigWhisper, entity.ConfigSlack, entity.ConfigTelegram} {
		raw, ok := req[key]
		if !ok || raw == nil {
			continue
		}
		if _, err := cast.ToBoolE(raw); err != nil {
			return fmt.Errorf("%w: %s must be TRUE or FALSE", settings.ErrInvalidConfig, key)
		}
	}

	return nil
}

func makeConfigResponse(cfg entity.Config) *settings.ConfigResponse {
	out := cfg.Clone()
	if out.String(entity.ConfigPassword) != "" {
		out[entity.ConfigPassword] = settings.RedactedValue
	}

	labels := make(map[string]string, len(out))
	for key := range out {
		labels[key] = StartCase(key)
	}

	return &settings.ConfigResponse{
		Config: out,
		Labels: labels,
	}
}

// StartCase turns a config key into a form label, "slack_webhook" becomes
// "Slack Webhook".
func StartCase(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
