package intentService

import (
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	"intentbot/database/sqlite"
	intents "intentbot/internal/api/intent"
	intentRepository "intentbot/internal/api/intent/repository"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
	"intentbot/pkg/utils"
	"io"
	"testing"
)

func newTestService(t *testing.T) (IIntentService, intentRepository.Repository) {
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

	repo := intentRepository.New(db, logger)
	svc := NewIntentService(logger, repo, resolver.New(repo.Corpus(), nil), utils.New())
	return svc, repo
}

func mustIntent(t *testing.T, svc IIntentService, name, response string, samples ...string) *intents.IntentResponse {
	t.Helper()
	ctx := context.Background()

	intent, err := svc.CreateIntent(ctx, intents.CreateIntentRequest{Name: name, ResponseText: response})
	if err != nil {
		t.Fatalf("create intent %s: %v", name, err)
	}
	for _, sample := range samples {
		if _, err := svc.CreateExample(ctx, intents.CreateExampleRequest{Sample: sample, IntentID: intent.ID}); err != nil {
			t.Fatalf("create example %q: %v", sample, err)
		}
	}
	return intent
}

func TestDeleteIntent_CascadesToExamples(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doomed := mustIntent(t, svc, "greeting", "Hi there", "hello", "hey")
	kept := mustIntent(t, svc, "farewell", "Bye", "goodbye")

	if err := svc.DeleteIntent(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	client, _ := repo.NewClient(false)
	examples, err := client.Examples.GetAllExamples(ctx)
	if err != nil {
		t.Fatalf("list examples: %v", err)
	}
	if len(examples) != 1 || examples[0].IntentID != kept.ID {
		t.Fatalf("expected only the other intent's example to survive, got %+v", examples)
	}

	if _, err := svc.GetIntentByID(ctx, doomed.ID); !errors.Is(err, intents.ErrIntentNotFound) {
		t.Errorf("expected deleted intent to be gone, got %v", err)
	}
}

func TestDeleteIntent_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.DeleteIntent(context.Background(), "missing"); !errors.Is(err, intents.ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestDeleteAllIntents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustIntent(t, svc, "greeting", "Hi", "hello", "hey")
	mustIntent(t, svc, "farewell", "Bye", "goodbye")

	result, err := svc.DeleteAllIntents(ctx)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if result.Intents != 2 || result.Examples != 3 {
		t.Errorf("unexpected counts %+v", result)
	}

	list, err := svc.GetAllIntents(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("expected no intents, got %d", list.Total)
	}
}

func TestCreateIntent_RejectsBlank(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateIntent(context.Background(), intents.CreateIntentRequest{Name: "  ", ResponseText: "x"})
	if !errors.Is(err, intents.ErrInvalidIntentData) {
		t.Fatalf("expected ErrInvalidIntentData, got %v", err)
	}
}

func TestCreateExample_RequiresIntent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateExample(context.Background(), intents.CreateExampleRequest{Sample: "hello", IntentID: "missing"})
	if !errors.Is(err, intents.ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestUpdateExample_MovesBetweenIntents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	from := mustIntent(t, svc, "a", "A")
	to := mustIntent(t, svc, "b", "B")
	example, err := svc.CreateExample(ctx, intents.CreateExampleRequest{Sample: "sample", IntentID: from.ID})
	if err != nil {
		t.Fatalf("create example: %v", err)
	}

	updated, err := svc.UpdateExample(ctx, example.ID, intents.UpdateExampleRequest{IntentID: to.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IntentID != to.ID || updated.Sample != "sample" {
		t.Errorf("unexpected example %+v", updated)
	}

	if _, err := svc.UpdateExample(ctx, example.ID, intents.UpdateExampleRequest{IntentID: "missing"}); !errors.Is(err, intents.ErrIntentNotFound) {
		t.Errorf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestUpdateIntent_KeepsOmittedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	intent := mustIntent(t, svc, "greeting", "Hi", "hello")

	updated, err := svc.UpdateIntent(ctx, intent.ID, intents.UpdateIntentRequest{ResponseText: "Hello!"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "greeting" || updated.ResponseText != "Hello!" || len(updated.Examples) != 1 {
		t.Errorf("unexpected intent %+v", updated)
	}
}

func TestGetAllIntents_Search(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustIntent(t, svc, "opening hours", "We open at 9", "when do you open")
	mustIntent(t, svc, "refund", "Refunds take 5 days", "i want my money back")

	list, err := svc.GetAllIntents(ctx, "money")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || list.Intents[0].Name != "refund" {
		t.Fatalf("expected only refund intent, got %+v", list.Intents)
	}

	all, err := svc.GetAllIntents(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("expected 2 intents, got %d", all.Total)
	}
}

func TestImportIntents(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := intents.ParseImportDocument([]byte(`
intents:
  - name: greeting
    response: Hi there
    examples: [hello, "  ", hey]
  - name: incomplete
    examples: [oops]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result, err := svc.ImportIntents(ctx, doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Intents != 1 || result.Examples != 2 || result.Skipped != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestParseImportDocument_Invalid(t *testing.T) {
	if _, err := intents.ParseImportDocument([]byte("intents: [")); !errors.Is(err, intents.ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport, got %v", err)
	}
}

func TestTestText_ExactMatchAndFallback(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	intent := mustIntent(t, svc, "greeting", "Hi there", "hello")

	matched := svc.TestText(ctx, "hello", entity.Config{})
	if matched.Outcome != "matched" || matched.Text != "Hi there" || matched.IntentID != intent.ID {
		t.Errorf("unexpected match %+v", matched)
	}
	if matched.Score != 1 {
		t.Errorf("expected score 1 for exact match, got %v", matched.Score)
	}

	fallback := svc.TestText(ctx, "zzzzqqqq", entity.Config{entity.ConfigDefaultResponse: "Sorry?"})
	if fallback.Outcome != "fallback" || fallback.Text != "Sorry?" {
		t.Errorf("unexpected fallback %+v", fallback)
	}

	silent := svc.TestText(ctx, "zzzzqqqq", entity.Config{})
	if silent.Outcome != "no_output" || silent.Text != "" {
		t.Errorf("unexpected no-output %+v", silent)
	}
}
