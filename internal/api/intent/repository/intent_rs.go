package intentRepository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"time"
)

type IntentDB struct {
	ID           sql.NullString `db:"id"`
	Name         sql.NullString `db:"name"`
	ResponseText sql.NullString `db:"response_text"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *intentsRepository) CreateIntent(ctx context.Context, intent entity.Intent) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":            intent.ID,
		"name":          intent.Name,
		"response_text": intent.ResponseText,
		"created_at":    intent.CreatedAt,
		"updated_at":    intent.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateIntent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateIntent")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating intent")
		return err
	}

	return nil
}

func (r *intentsRepository) GetIntentByID(ctx context.Context, id string) (entity.Intent, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var intent IntentDB

	query, args, err := sqlx.Named(queryGetIntentByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetIntentByID named query preparation err")
		return entity.Intent{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&intent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intent_id":  id,
			}).Warn("GetIntentByID no rows found")
			return entity.Intent{}, intents.ErrIntentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetIntentByID execution err")
		return entity.Intent{}, err
	}

	return r.makeIntent(intent), nil
}

func (r *intentsRepository) GetAllIntents(ctx context.Context) ([]entity.Intent, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []IntentDB

	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(queryGetAllIntents)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllIntents execution err")
		return nil, err
	}

	result := make([]entity.Intent, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeIntent(row))
	}

	return result, nil
}

func (r *intentsRepository) UpdateIntent(ctx context.Context, intent entity.Intent) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryUpdateIntent, map[string]interface{}{
		"id":            intent.ID,
		"name":          intent.Name,
		"response_text": intent.ResponseText,
		"updated_at":    intent.UpdatedAt,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateIntent named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateIntent execution err")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return intents.ErrIntentNotFound
	}

	return nil
}

func (r *intentsRepository) DeleteIntent(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteIntent, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteIntent named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteIntent execution err")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return intents.ErrIntentNotFound
	}

	return nil
}

func (r *intentsRepository) DeleteAllIntents(ctx context.Context) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	res, err := r.q.ExecContext(ctx, r.q.Rebind(queryDeleteAllIntents))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteAllIntents execution err")
		return 0, err
	}

	return res.RowsAffected()
}

func (r *intentsRepository) makeIntent(row IntentDB) entity.Intent {
	return entity.Intent{
		ID:           row.ID.String,
		Name:         row.Name.String,
		ResponseText: row.ResponseText.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
