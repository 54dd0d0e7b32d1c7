package intentService

import (
	"errors"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"strings"
	"time"
)

func (s *intentService) CreateIntent(ctx context.Context, req intents.CreateIntentRequest) (*intents.IntentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	name := strings.TrimSpace(req.Name)
	responseText := strings.TrimSpace(req.ResponseText)
	if name == "" || responseText == "" {
		return nil, intents.ErrInvalidIntentData
	}

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	now := time.Now().UTC()
	intentID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	intent := entity.Intent{
		ID:           intentID,
		Name:         name,
		ResponseText: responseText,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Intents.CreateIntent(ctx, intent); err != nil {
		return nil, intents.ErrCreateIntent
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intent_id":  intent.ID,
	}).Info("Intent created")

	return makeIntentResponse(intent, nil), nil
}

func (s *intentService) GetIntentByID(ctx context.Context, id string) (*intents.IntentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	intent, err := repo.Intents.GetIntentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	examples, err := repo.Examples.GetExamplesByIntentID(ctx, id)
	if err != nil {
		return nil, intents.ErrListIntents
	}

	return makeIntentResponse(intent, examples), nil
}

// GetAllIntents lists every intent with its examples. A non-empty search
// keeps the intents whose name, response or samples fuzzily contain it,
// best match first.
func (s *intentService) GetAllIntents(ctx context.Context, search string) (*intents.IntentListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	intentList, err := repo.Intents.GetAllIntents(ctx)
	if err != nil {
		return nil, intents.ErrListIntents
	}

	examples, err := repo.Examples.GetAllExamples(ctx)
	if err != nil {
		return nil, intents.ErrListIntents
	}

	byIntent := make(map[string][]entity.Example, len(intentList))
	for _, example := range examples {
		byIntent[example.IntentID] = append(byIntent[example.IntentID], example)
	}

	result := make([]intents.IntentResponse, 0, len(intentList))
	for _, intent := range intentList {
		result = append(result, *makeIntentResponse(intent, byIntent[intent.ID]))
	}

	search = strings.TrimSpace(search)
	if search != "" {
		result = filterIntents(result, search)
	}

	return &intents.IntentListResponse{
		Intents: result,
		Total:   len(result),
	}, nil
}

type intentSource []intents.IntentResponse

func (s intentSource) String(i int) string {
	parts := []string{s[i].Name, s[i].ResponseText}
	for _, example := range s[i].Examples {
		parts = append(parts, example.Sample)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func (s intentSource) Len() int {
	return len(s)
}

func filterIntents(list []intents.IntentResponse, search string) []intents.IntentResponse {
	matches := fuzzy.FindFrom(strings.ToLower(search), intentSource(list))

	filtered := make([]intents.IntentResponse, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, list[match.Index])
	}
	return filtered
}

func (s *intentService) UpdateIntent(ctx context.Context, id string, req intents.UpdateIntentRequest) (*intents.IntentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	intent, err := repo.Intents.GetIntentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		intent.Name = name
	}
	if responseText := strings.TrimSpace(req.ResponseText); responseText != "" {
		intent.ResponseText = responseText
	}
	intent.UpdatedAt = time.Now().UTC()

	if err := repo.Intents.UpdateIntent(ctx, intent); err != nil {
		if errors.Is(err, intents.ErrIntentNotFound) {
			return nil, err
		}
		return nil, intents.ErrUpdateIntent
	}

	examples, err := repo.Examples.GetExamplesByIntentID(ctx, id)
	if err != nil {
		return nil, intents.ErrUpdateIntent
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, intents.ErrUpdateIntent
	}

	return makeIntentResponse(intent, examples), nil
}

// DeleteIntent removes the intent and every example pointing at it in one
// transaction, so no example is ever left referencing a missing intent.
func (s *intentService) DeleteIntent(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if _, err := repo.Intents.GetIntentByID(ctx, id); err != nil {
		return err
	}

	removed, err := repo.Examples.DeleteExamplesByIntentID(ctx, id)
	if err != nil {
		return intents.ErrDeleteIntent
	}

	if err := repo.Intents.DeleteIntent(ctx, id); err != nil {
		if errors.Is(err, intents.ErrIntentNotFound) {
			return err
		}
		return intents.ErrDeleteIntent
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return intents.ErrDeleteIntent
	}

	s.log.WithFields(logrus.Fields{
		"request_id":       requestID,
		"intent_id":        id,
		"examples_removed": removed,
	}).Info("Intent deleted")

	return nil
}

func (s *intentService) DeleteAllIntents(ctx context.Context) (*intents.DeleteAllResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	examplesRemoved, err := repo.Examples.DeleteAllExamples(ctx)
	if err != nil {
		return nil, intents.ErrDeleteIntent
	}

	intentsRemoved, err := repo.Intents.DeleteAllIntents(ctx)
	if err != nil {
		return nil, intents.ErrDeleteIntent
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, intents.ErrDeleteIntent
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intents":    intentsRemoved,
		"examples":   examplesRemoved,
	}).Warn("All intents deleted")

	return &intents.DeleteAllResponse{
		Intents:  intentsRemoved,
		Examples: examplesRemoved,
	}, nil
}

func makeIntentResponse(intent entity.Intent, examples []entity.Example) *intents.IntentResponse {
	resp := &intents.IntentResponse{
		ID:           intent.ID,
		Name:         intent.Name,
		ResponseText: intent.ResponseText,
		Examples:     make([]intents.ExampleResponse, 0, len(examples)),
		CreatedAt:    intent.CreatedAt,
		UpdatedAt:    intent.UpdatedAt,
	}
	for _, example := range examples {
		resp.Examples = append(resp.Examples, makeExampleResponse(example))
	}
	return resp
}
