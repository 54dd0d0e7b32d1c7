package settingsService

import (
	"context"
	"github.com/sirupsen/logrus"
	intentRepository "intentbot/internal/api/intent/repository"
	"intentbot/internal/api/settings"
	settingsRepository "intentbot/internal/api/settings/repository"
	"intentbot/internal/entity"
	"intentbot/pkg/bcrypt"
	"intentbot/pkg/s3"
	"intentbot/pkg/utils"
)

type ISettingsService interface {
	CurrentConfig(ctx context.Context) (entity.Config, error)
	Bootstrap(ctx context.Context, path string) (entity.Config, error)
	GetConfig(ctx context.Context) (*settings.ConfigResponse, error)
	UpdateConfig(ctx context.Context, req settings.UpdateConfigRequest) (*settings.ConfigResponse, error)
	GetCollections(ctx context.Context) (*settings.CollectionsResponse, error)
	ClearCollection(ctx context.Context, collection string) (*settings.ClearCollectionResponse, error)
	GetMetadata(ctx context.Context) (*settings.MetadataResponse, error)
	Backup(ctx context.Context) (*settings.BackupResponse, error)
}

type settingsService struct {
	log          *logrus.Logger
	settingsRepo settingsRepository.Repository
	intentRepo   intentRepository.Repository
	bcrypt       bcrypt.IBcrypt
	utils        utils.IUtils
	s3Client     s3.ItfS3
}

// NewSettingsService builds the service. s3Client may be nil, in which case
// backups report ErrBackupNotConfigured.
func NewSettingsService(
	log *logrus.Logger,
	settingsRepo settingsRepository.Repository,
	intentRepo intentRepository.Repository,
	bcrypt bcrypt.IBcrypt,
	utils utils.IUtils,
	s3Client s3.ItfS3,
) ISettingsService {
	return &settingsService{
		log:          log,
		settingsRepo: settingsRepo,
		intentRepo:   intentRepo,
		bcrypt:       bcrypt,
		utils:        utils,
		s3Client:     s3Client,
	}
}
