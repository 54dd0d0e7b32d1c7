package settingsRepository

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	contextPkg "intentbot/pkg/context"
)

// Table names cannot be bound as parameters, so only names from the schema
// are ever interpolated.
func knownTable(table string) error {
	for _, name := range database.Tables {
		if name == table {
			return nil
		}
	}
	return fmt.Errorf("unknown table %q", table)
}

func (r *collectionsRepository) Count(ctx context.Context, table string) (int64, error) {
	if err := knownTable(table); err != nil {
		return 0, err
	}

	var count int64
	if err := r.q.QueryRowxContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"table":      table,
			"error":      err.Error(),
		}).Error("Count execution err")
		return 0, err
	}

	return count, nil
}

func (r *collectionsRepository) Clear(ctx context.Context, table string) (int64, error) {
	if err := knownTable(table); err != nil {
		return 0, err
	}

	res, err := r.q.ExecContext(ctx, "DELETE FROM "+table)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"table":      table,
			"error":      err.Error(),
		}).Error("Clear execution err")
		return 0, err
	}

	return res.RowsAffected()
}
