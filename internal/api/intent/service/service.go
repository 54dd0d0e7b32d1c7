package intentService

import (
	"context"
	"github.com/sirupsen/logrus"
	intents "intentbot/internal/api/intent"
	intentRepository "intentbot/internal/api/intent/repository"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
	"intentbot/pkg/utils"
)

type IIntentService interface {
	CreateIntent(ctx context.Context, req intents.CreateIntentRequest) (*intents.IntentResponse, error)
	GetIntentByID(ctx context.Context, id string) (*intents.IntentResponse, error)
	GetAllIntents(ctx context.Context, search string) (*intents.IntentListResponse, error)
	UpdateIntent(ctx context.Context, id string, req intents.UpdateIntentRequest) (*intents.IntentResponse, error)
	DeleteIntent(ctx context.Context, id string) error
	DeleteAllIntents(ctx context.Context) (*intents.DeleteAllResponse, error)

	CreateExample(ctx context.Context, req intents.CreateExampleRequest) (*intents.ExampleResponse, error)
	GetExampleByID(ctx context.Context, id string) (*intents.ExampleResponse, error)
	UpdateExample(ctx context.Context, id string, req intents.UpdateExampleRequest) (*intents.ExampleResponse, error)
	DeleteExample(ctx context.Context, id string) error

	ImportIntents(ctx context.Context, doc intents.ImportDocument) (*intents.ImportResult, error)

	TestText(ctx context.Context, text string, cfg entity.Config) intents.TestResponse
}

type intentService struct {
	log        *logrus.Logger
	intentRepo intentRepository.Repository
	resolver   resolver.IResolver
	utils      utils.IUtils
}

func NewIntentService(
	log *logrus.Logger,
	intentRepo intentRepository.Repository,
	resolver resolver.IResolver,
	utils utils.IUtils,
) IIntentService {
	return &intentService{
		log:        log,
		intentRepo: intentRepo,
		resolver:   resolver,
		utils:      utils,
	}
}
