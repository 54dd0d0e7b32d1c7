package intentRepository

import (
	"context"
	"errors"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
)

type corpus struct {
	repo *repository
}

// Corpus exposes the stored examples to the resolver. Each call reads the
// database directly; nothing is cached between messages.
func (r *repository) Corpus() resolver.CorpusProvider {
	return &corpus{repo: r}
}

func (c *corpus) ListExamples(ctx context.Context) ([]entity.Example, error) {
	client, err := c.repo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return client.Examples.GetAllExamples(ctx)
}

func (c *corpus) FindExampleByText(ctx context.Context, sample string) (entity.Example, error) {
	client, err := c.repo.NewClient(false)
	if err != nil {
		return entity.Example{}, err
	}

	example, err := client.Examples.GetExampleBySample(ctx, sample)
	if errors.Is(err, intents.ErrExampleNotFound) {
		return entity.Example{}, resolver.ErrNotFound
	}
	return example, err
}

func (c *corpus) FindIntentByID(ctx context.Context, id string) (entity.Intent, error) {
	client, err := c.repo.NewClient(false)
	if err != nil {
		return entity.Intent{}, err
	}

	intent, err := client.Intents.GetIntentByID(ctx, id)
	if errors.Is(err, intents.ErrIntentNotFound) {
		return entity.Intent{}, resolver.ErrNotFound
	}
	return intent, err
}
