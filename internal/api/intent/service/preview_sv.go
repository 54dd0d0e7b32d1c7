package intentService

import (
	"golang.org/x/net/context"
	intents "intentbot/internal/api/intent"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
)

// TestText runs the resolver exactly as the webhook would, without recording
// or forwarding anything.
func (s *intentService) TestText(ctx context.Context, text string, cfg entity.Config) intents.TestResponse {
	outcome := s.resolver.Resolve(ctx, text, cfg, contextPkg.Logger(ctx, s.log))

	return intents.TestResponse{
		Outcome:   outcome.Kind.String(),
		Text:      outcome.Text,
		Score:     outcome.Score,
		Threshold: outcome.Threshold,
		Sample:    outcome.Sample,
		IntentID:  outcome.IntentID,
		Reason:    outcome.ReasonText(),
		Degraded:  outcome.Degraded(),
	}
}
