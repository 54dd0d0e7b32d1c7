package intentService

import (
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"strings"
	"time"
)

func (s *intentService) CreateExample(ctx context.Context, req intents.CreateExampleRequest) (*intents.ExampleResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sample := strings.TrimSpace(req.Sample)
	if sample == "" {
		return nil, intents.ErrInvalidSample
	}

	repo, err := s.intentRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	if _, err := repo.Intents.GetIntentByID(ctx, req.IntentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	exampleID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	example := entity.Example{
		ID:        exampleID,
		Sample:    sample,
		IntentID:  req.IntentID,
		CreatedAt: now,
	}

	if err := repo.Examples.CreateExample(ctx, example); err != nil {
		return nil, intents.ErrCreateExample
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, intents.ErrCreateExample
	}

	resp := makeExampleResponse(example)
	return &resp, nil
}

func (s *intentService) GetExampleByID(ctx context.Context, id string) (*intents.ExampleResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	example, err := repo.Examples.GetExampleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := makeExampleResponse(example)
	return &resp, nil
}

func (s *intentService) UpdateExample(ctx context.Context, id string, req intents.UpdateExampleRequest) (*intents.ExampleResponse, error) {
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

	example, err := repo.Examples.GetExampleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sample := strings.TrimSpace(req.Sample); sample != "" {
		example.Sample = sample
	}
	if req.IntentID != "" && req.IntentID != example.IntentID {
		if _, err := repo.Intents.GetIntentByID(ctx, req.IntentID); err != nil {
			return nil, err
		}
		example.IntentID = req.IntentID
	}

	if err := repo.Examples.UpdateExample(ctx, example); err != nil {
		if errors.Is(err, intents.ErrExampleNotFound) {
			return nil, err
		}
		return nil, intents.ErrUpdateExample
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, intents.ErrUpdateExample
	}

	resp := makeExampleResponse(example)
	return &resp, nil
}

func (s *intentService) DeleteExample(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Examples.DeleteExample(ctx, id); err != nil {
		if errors.Is(err, intents.ErrExampleNotFound) {
			return err
		}
		return intents.ErrDeleteExample
	}

	return nil
}

func makeExampleResponse(example entity.Example) intents.ExampleResponse {
	return intents.ExampleResponse{
		ID:        example.ID,
		Sample:    example.Sample,
		IntentID:  example.IntentID,
		CreatedAt: example.CreatedAt,
	}
}
