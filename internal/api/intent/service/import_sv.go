package intentService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"strings"
	"time"
)

// ImportIntents loads a whole document in one transaction. Entries without
// a name or response are skipped, blank samples are ignored.
func (s *intentService) ImportIntents(ctx context.Context, doc intents.ImportDocument) (*intents.ImportResult, error) {
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

	result := &intents.ImportResult{}
	for _, item := range doc.Intents {
		name := strings.TrimSpace(item.Name)
		responseText := strings.TrimSpace(item.Response)
		if name == "" || responseText == "" {
			result.Skipped++
			continue
		}

		now := time.Now().UTC()
		intent := entity.Intent{
			ID:           s.utils.NewID(),
			Name:         name,
			ResponseText: responseText,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Intents.CreateIntent(ctx, intent); err != nil {
			return nil, intents.ErrImport
		}
		result.Intents++

		for _, raw := range item.Examples {
			sample := strings.TrimSpace(raw)
			if sample == "" {
				continue
			}
			example := entity.Example{
				ID:        s.utils.NewID(),
				Sample:    sample,
				IntentID:  intent.ID,
				CreatedAt: time.Now().UTC(),
			}
			if err := repo.Examples.CreateExample(ctx, example); err != nil {
				return nil, intents.ErrImport
			}
			result.Examples++
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, intents.ErrImport
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intents":    result.Intents,
		"examples":   result.Examples,
		"skipped":    result.Skipped,
	}).Info("Intents imported")

	return result, nil
}
