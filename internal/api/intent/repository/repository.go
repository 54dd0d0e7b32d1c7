package intentRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
)

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
	Corpus() resolver.CorpusProvider
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
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
		Intents:  &intentsRepository{q: sqlExecutor, log: r.log},
		Examples: &examplesRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Intents interface {
		CreateIntent(ctx context.Context, intent entity.Intent) error
		GetIntentByID(ctx context.Context, id string) (entity.Intent, error)
		GetAllIntents(ctx context.Context) ([]entity.Intent, error)
		UpdateIntent(ctx context.Context, intent entity.Intent) error
		DeleteIntent(ctx context.Context, id string) error
		DeleteAllIntents(ctx context.Context) (int64, error)
	}

	Examples interface {
		CreateExample(ctx context.Context, example entity.Example) error
		GetExampleByID(ctx context.Context, id string) (entity.Example, error)
		GetExampleBySample(ctx context.Context, sample string) (entity.Example, error)
		GetAllExamples(ctx context.Context) ([]entity.Example, error)
		GetExamplesByIntentID(ctx context.Context, intentID string) ([]entity.Example, error)
		UpdateExample(ctx context.Context, example entity.Example) error
		DeleteExample(ctx context.Context, id string) error
		DeleteExamplesByIntentID(ctx context.Context, intentID string) (int64, error)
		DeleteAllExamples(ctx context.Context) (int64, error)
	}

	Commit   func() error
	Rollback func() error
}

type intentsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type examplesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
