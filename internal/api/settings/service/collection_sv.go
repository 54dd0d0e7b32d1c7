package settingsService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/api/settings"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"os"
)

// clearable maps a collection name to the tables emptied with it, in
// deletion order.
var clearable = map[string][]string{
	"intents":       {"examples", "intents"},
	"examples":      {"examples"},
	"seen_messages": {"seen_messages"},
	"messages":      {"seen_messages"},
	"traces":        {"traces"},
}

var listed = []string{"intents", "examples", "seen_messages", "traces"}

func (s *settingsService) GetCollections(ctx context.Context) (*settings.CollectionsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.settingsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	stats := make([]settings.CollectionStat, 0, len(listed))
	for _, name := range listed {
		count, err := repo.Collections.Count(ctx, name)
		if err != nil {
			return nil, settings.ErrCollectionStats
		}
		stats = append(stats, settings.CollectionStat{Name: name, Count: count})
	}

	return &settings.CollectionsResponse{Collections: stats}, nil
}

func (s *settingsService) ClearCollection(ctx context.Context, collection string) (*settings.ClearCollectionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	tables, ok := clearable[collection]
	if !ok {
		return nil, settings.ErrUnknownCollection
	}

	repo, err := s.settingsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	var removed int64
	for _, table := range tables {
		n, err := repo.Collections.Clear(ctx, table)
		if err != nil {
			return nil, settings.ErrClearCollection
		}
		removed += n
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, settings.ErrClearCollection
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"collection": collection,
		"removed":    removed,
	}).Warn("Collection cleared")

	return &settings.ClearCollectionResponse{
		Collection: collection,
		Removed:    removed,
	}, nil
}

func (s *settingsService) GetMetadata(ctx context.Context) (*settings.MetadataResponse, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return nil, settings.ErrConfigUnavailable
	}

	return &settings.MetadataResponse{
		Name:     envOr("AUTOMATION_NAME", "intentbot"),
		Version:  envOr("COMMIT_HASH", "dev"),
		UniqueID: cfg.String(entity.ConfigUniqueID),
	}, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
