package settingsRepository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"time"
)

func (r *configRepository) GetConfig(ctx context.Context) (entity.Config, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var document string

	query, args, err := sqlx.Named(queryGetConfig, map[string]interface{}{
		"id": configRowID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConfig named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigMissing
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConfig execution err")
		return nil, err
	}

	cfg := entity.Config{}
	if err := jsoniter.UnmarshalFromString(document, &cfg); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Stored configuration is not valid JSON")
		return nil, err
	}

	return cfg, nil
}

func (r *configRepository) SaveConfig(ctx context.Context, cfg entity.Config, updatedAt time.Time) error {
	requestID := contextPkg.GetRequestID(ctx)

	document, err := jsoniter.MarshalToString(cfg)
	if err != nil {
		return err
	}

	query, args, err := sqlx.Named(queryUpsertConfig, map[string]interface{}{
		"id":         configRowID,
		"document":   document,
		"updated_at": updatedAt,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SaveConfig named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SaveConfig execution err")
		return err
	}

	return nil
}
