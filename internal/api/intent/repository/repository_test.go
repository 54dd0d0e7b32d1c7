package intentRepository

import (
	"context"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	"intentbot/database/sqlite"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
	"io"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) (Repository, *sqlx.DB) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(db, logger), db
}

func seed(t *testing.T, repo Repository) (entity.Intent, []entity.Example) {
	t.Helper()
	ctx := context.Background()

	client, err := repo.NewClient(false)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	intent := entity.Intent{ID: "01I", Name: "greeting", ResponseText: "Hi there", CreatedAt: base, UpdatedAt: base}
	if err := client.Intents.CreateIntent(ctx, intent); err != nil {
		t.Fatalf("create intent: %v", err)
	}

	examples := []entity.Example{
		{ID: "01E2", Sample: "hello", IntentID: intent.ID, CreatedAt: base.Add(2 * time.Second)},
		{ID: "01E1", Sample: "hello", IntentID: intent.ID, CreatedAt: base.Add(time.Second)},
		{ID: "01E3", Sample: "good morning", IntentID: intent.ID, CreatedAt: base.Add(3 * time.Second)},
	}
	for _, example := range examples {
		if err := client.Examples.CreateExample(ctx, example); err != nil {
			t.Fatalf("create example: %v", err)
		}
	}

	return intent, examples
}

func TestExamples_OrderedByCreation(t *testing.T) {
	repo, _ := newTestRepository(t)
	seed(t, repo)

	client, _ := repo.NewClient(false)
	examples, err := client.Examples.GetAllExamples(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"01E1", "01E2", "01E3"}
	if len(examples) != len(want) {
		t.Fatalf("expected %d examples, got %d", len(want), len(examples))
	}
	for i, id := range want {
		if examples[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, examples[i].ID)
		}
	}
}

func TestGetExampleBySample_ReturnsEarliest(t *testing.T) {
	repo, _ := newTestRepository(t)
	seed(t, repo)

	client, _ := repo.NewClient(false)
	example, err := client.Examples.GetExampleBySample(context.Background(), "hello")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if example.ID != "01E1" {
		t.Errorf("expected earliest example 01E1, got %s", example.ID)
	}
}

func TestGetIntentByID_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	client, _ := repo.NewClient(false)
	_, err := client.Intents.GetIntentByID(context.Background(), "missing")
	if !errors.Is(err, intents.ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestTransaction_RollbackDiscardsWrites(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	client, err := repo.NewClient(true)
	if err != nil {
		t.Fatalf("tx client: %v", err)
	}
	now := time.Now().UTC()
	if err := client.Intents.CreateIntent(ctx, entity.Intent{ID: "tmp", Name: "n", ResponseText: "r", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := client.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	plain, _ := repo.NewClient(false)
	if _, err := plain.Intents.GetIntentByID(ctx, "tmp"); !errors.Is(err, intents.ErrIntentNotFound) {
		t.Fatalf("expected rolled back intent to be absent, got %v", err)
	}
}

func TestCorpus_TranslatesNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	intent, _ := seed(t, repo)
	corpus := repo.Corpus()
	ctx := context.Background()

	examples, err := corpus.ListExamples(ctx)
	if err != nil || len(examples) != 3 {
		t.Fatalf("expected 3 examples, got %d (%v)", len(examples), err)
	}

	if _, err := corpus.FindExampleByText(ctx, "nothing like this"); !errors.Is(err, resolver.ErrNotFound) {
		t.Errorf("expected resolver.ErrNotFound for sample, got %v", err)
	}
	if _, err := corpus.FindIntentByID(ctx, "missing"); !errors.Is(err, resolver.ErrNotFound) {
		t.Errorf("expected resolver.ErrNotFound for intent, got %v", err)
	}

	found, err := corpus.FindIntentByID(ctx, intent.ID)
	if err != nil || found.ResponseText != "Hi there" {
		t.Errorf("unexpected intent %+v (%v)", found, err)
	}
}

func TestCorpus_ClosedDatabaseIsUnavailable(t *testing.T) {
	repo, db := newTestRepository(t)
	db.Close()

	if _, err := repo.Corpus().ListExamples(context.Background()); err == nil {
		t.Fatal("expected an error from a closed database")
	}
}
