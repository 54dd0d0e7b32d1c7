package chatbotRepository

import (
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
)

func (r *messagesRepository) CreateMessage(ctx context.Context, message entity.SeenMessage) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateMessage, message)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateMessage")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when recording message")
		return err
	}

	return nil
}

func (r *messagesRepository) GetMessages(ctx context.Context, limit, offset int) ([]entity.SeenMessage, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(queryCountMessages)).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountMessages execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetMessages, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessages named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	messages := []entity.SeenMessage{}
	if err := r.q.SelectContext(ctx, &messages, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessages execution err")
		return nil, 0, err
	}

	return messages, total, nil
}
