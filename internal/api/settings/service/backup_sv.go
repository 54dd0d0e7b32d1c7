package settingsService

import (
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/api/settings"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"time"
)

// Backup uploads the corpus and the configuration, minus the password hash,
// as one JSON document.
func (s *settingsService) Backup(ctx context.Context) (*settings.BackupResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.s3Client == nil {
		return nil, settings.ErrBackupNotConfigured
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build backup snapshot")
		return nil, settings.ErrBackupFailed
	}

	body, err := jsoniter.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, settings.ErrBackupFailed
	}

	name := fmt.Sprintf("%s/%s.json", snapshot.UniqueID, snapshot.CreatedAt.Format("20060102T150405Z"))
	key, err := s.s3Client.UploadBackup(ctx, name, body)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload backup")
		return nil, settings.ErrBackupFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"key":        key,
		"intents":    len(snapshot.Intents),
		"examples":   len(snapshot.Examples),
	}).Info("Backup uploaded")

	result := &settings.BackupResponse{
		Key:       key,
		CreatedAt: snapshot.CreatedAt,
	}

	downloadURL, err := s.s3Client.PresignUrl(key)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to presign backup download")
	} else {
		result.DownloadURL = downloadURL
	}

	return result, nil
}

func (s *settingsService) snapshot(ctx context.Context) (*settings.Snapshot, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	delete(cfg, entity.ConfigPassword)

	repo, err := s.intentRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	intentList, err := repo.Intents.GetAllIntents(ctx)
	if err != nil {
		return nil, err
	}

	examples, err := repo.Examples.GetAllExamples(ctx)
	if err != nil {
		return nil, err
	}

	return &settings.Snapshot{
		UniqueID:  cfg.String(entity.ConfigUniqueID),
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Intents:   intentList,
		Examples:  examples,
	}, nil
}
