package entity

import (
	"errors"
	"github.com/spf13/cast"
	"math"
	"strings"
)

const (
	ConfigScore           = "score"
	ConfigDefaultResponse = "default_response"
	ConfigMessage         = "message"
	ConfigWhisper         = "whisper"
	ConfigSlack           = "slack"
	ConfigSlackWebhook    = "slack_webhook"
	ConfigTelegram        = "telegram"
	ConfigTelegramToken   = "telegram_token"
	ConfigTelegramChatID  = "telegram_chat_id"
	ConfigPassword        = "password"
	ConfigUniqueID        = "unique_id"
	ConfigTrace           = "trace"

	DefaultScore = 0.8
)

var ErrInvalidThreshold = errors.New("configured score is not numeric")

// Config is the runtime configuration document. Operators may add arbitrary
// keys, so it stays a loose map with typed accessors for the known ones.
type Config map[string]interface{}

// Threshold returns the match score threshold. An unset score yields the
// default; a non-numeric one yields the default and ErrInvalidThreshold.
func (c Config) Threshold() (float64, error) {
	raw, ok := c[ConfigScore]
	if !ok || raw == nil {
		return DefaultScore, nil
	}
	if s, isString := raw.(string); isString && strings.TrimSpace(s) == "" {
		return DefaultScore, nil
	}

	score, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return DefaultScore, ErrInvalidThreshold
	}

	return score, nil
}

func (c Config) DefaultResponse() string {
	return c.String(ConfigDefaultResponse)
}

func (c Config) String(key string) string {
	return cast.ToString(c[key])
}

// Enabled reports whether a channel toggle is on. Toggles are stored as the
// strings "TRUE"/"FALSE" by the admin form but real booleans are accepted.
func (c Config) Enabled(key string) bool {
	enabled, err := cast.ToBoolE(c[key])
	if err != nil {
		return false
	}
	return enabled
}

func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
