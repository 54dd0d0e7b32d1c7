package settingsRepository

import (
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/entity"
	"time"
)

var ErrConfigMissing = errors.New("configuration document not stored yet")

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Config:      &configRepository{q: sqlExecutor, log: r.log},
		Collections: &collectionsRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Config interface {
		GetConfig(ctx context.Context) (entity.Config, error)
		SaveConfig(ctx context.Context, cfg entity.Config, updatedAt time.Time) error
	}

	Collections interface {
		Count(ctx context.Context, table string) (int64, error)
		Clear(ctx context.Context, table string) (int64, error)
	}

	Commit   func() error
	Rollback func() error
}

type configRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type collectionsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
