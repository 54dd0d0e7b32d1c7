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
)

func (r *examplesRepository) CreateExample(ctx context.Context, example entity.Example) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateExample, map[string]interface{}{
		"id":         example.ID,
		"sample":     example.Sample,
		"intent_id":  example.IntentID,
		"created_at": example.CreatedAt,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExample")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating example")
		return err
	}

	return nil
}

func (r *examplesRepository) GetExampleByID(ctx context.Context, id string) (entity.Example, error) {
	return r.getOne(ctx, queryGetExampleByID, map[string]interface{}{"id": id}, "GetExampleByID")
}

func (r *examplesRepository) GetExampleBySample(ctx context.Context, sample string) (entity.Example, error) {
	return r.getOne(ctx, queryGetExampleBySample, map[string]interface{}{"sample": sample}, "GetExampleBySample")
}

func (r *examplesRepository) getOne(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Example, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var example entity.Example

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Example{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&example); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug(op + " no rows found")
			return entity.Example{}, intents.ErrExampleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Example{}, err
	}

	return example, nil
}

func (r *examplesRepository) GetAllExamples(ctx context.Context) ([]entity.Example, error) {
	requestID := contextPkg.GetRequestID(ctx)
	examples := []entity.Example{}

	if err := r.q.SelectContext(ctx, &examples, r.q.Rebind(queryGetAllExamples)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllExamples execution err")
		return nil, err
	}

	return examples, nil
}

func (r *examplesRepository) GetExamplesByIntentID(ctx context.Context, intentID string) ([]entity.Example, error) {
	requestID := contextPkg.GetRequestID(ctx)
	examples := []entity.Example{}

	query, args, err := sqlx.Named(queryGetExamplesByIntentID, map[string]interface{}{
		"intent_id": intentID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExamplesByIntentID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &examples, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExamplesByIntentID execution err")
		return nil, err
	}

	return examples, nil
}

func (r *examplesRepository) UpdateExample(ctx context.Context, example entity.Example) error {
	affected, err := r.exec(ctx, queryUpdateExample, map[string]interface{}{
		"id":        example.ID,
		"sample":    example.Sample,
		"intent_id": example.IntentID,
	}, "UpdateExample")
	if err != nil {
		return err
	}
	if affected == 0 {
		return intents.ErrExampleNotFound
	}
	return nil
}

func (r *examplesRepository) DeleteExample(ctx context.Context, id string) error {
	affected, err := r.exec(ctx, queryDeleteExample, map[string]interface{}{"id": id}, "DeleteExample")
	if err != nil {
		return err
	}
	if affected == 0 {
		return intents.ErrExampleNotFound
	}
	return nil
}

func (r *examplesRepository) DeleteExamplesByIntentID(ctx context.Context, intentID string) (int64, error) {
	return r.exec(ctx, queryDeleteExamplesByIntentID, map[string]interface{}{"intent_id": intentID}, "DeleteExamplesByIntentID")
}

func (r *examplesRepository) DeleteAllExamples(ctx context.Context) (int64, error) {
	return r.exec(ctx, queryDeleteAllExamples, map[string]interface{}{}, "DeleteAllExamples")
}

func (r *examplesRepository) exec(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return 0, err
	}

	return res.RowsAffected()
}
