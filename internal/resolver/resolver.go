package resolver

import (
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"intentbot/internal/entity"
	"intentbot/pkg/fuzzyset"
	"strings"
)

// ErrNotFound is returned by a CorpusProvider lookup that found nothing.
var ErrNotFound = errors.New("not found")

type CorpusProvider interface {
	ListExamples(ctx context.Context) ([]entity.Example, error)
	FindExampleByText(ctx context.Context, sample string) (entity.Example, error)
	FindIntentByID(ctx context.Context, id string) (entity.Intent, error)
}

type IResolver interface {
	Resolve(ctx context.Context, text string, cfg entity.Config, log logrus.FieldLogger) Outcome
}

// Resolver turns inbound text into a response. It holds no per-request state
// and re-reads the corpus on every call.
type Resolver struct {
	corpus CorpusProvider
	scorer fuzzyset.IScorer
}

func New(corpus CorpusProvider, scorer fuzzyset.IScorer) *Resolver {
	if scorer == nil {
		scorer = fuzzyset.New()
	}
	return &Resolver{
		corpus: corpus,
		scorer: scorer,
	}
}

func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func (r *Resolver) Resolve(ctx context.Context, text string, cfg entity.Config, log logrus.FieldLogger) Outcome {
	if log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		log = discard
	}

	query := Normalize(text)

	threshold, err := cfg.Threshold()
	if err != nil {
		log.WithFields(logrus.Fields{
			"score": cfg[entity.ConfigScore],
			"error": err.Error(),
		}).Warn("Invalid score threshold, using default")
	}

	outcome := r.match(ctx, query, threshold, log)
	outcome.Threshold = threshold
	if outcome.Kind == Matched {
		return outcome
	}

	if fallback := cfg.DefaultResponse(); fallback != "" {
		log.WithField("reason", outcome.ReasonText()).Info("Using default response")
		outcome.Kind = Fallback
		outcome.Text = fallback
		return outcome
	}

	log.WithField("reason", outcome.ReasonText()).Info("No response and no default response")
	outcome.Kind = NoOutput
	outcome.Text = ""
	return outcome
}

func (r *Resolver) match(ctx context.Context, query string, threshold float64, log logrus.FieldLogger) Outcome {
	examples, err := r.corpus.ListExamples(ctx)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to fetch corpus")
		return Outcome{Reason: ErrCorpusUnavailable}
	}

	samples := make([]string, len(examples))
	for i, example := range examples {
		samples[i] = example.Sample
	}

	ranked := r.scorer.Rank(samples, query)
	if len(ranked) == 0 {
		log.WithField("corpus_size", len(examples)).Info("No match found in fuzzy search")
		return Outcome{Reason: ErrNoCandidates}
	}

	best := ranked[0]
	log.WithFields(logrus.Fields{
		"score":     best.Score,
		"sample":    best.Candidate,
		"threshold": threshold,
	}).Info("Nearest match")

	if best.Score <= threshold {
		log.Info("No close enough response found")
		return Outcome{Score: best.Score, Sample: best.Candidate, Reason: ErrBelowThreshold}
	}

	outcome := Outcome{Score: best.Score, Sample: best.Candidate}

	example, err := r.corpus.FindExampleByText(ctx, best.Candidate)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithField("sample", best.Candidate).Warn("Matched example disappeared")
			outcome.Reason = ErrDanglingReference
			return outcome
		}
		log.WithField("error", err.Error()).Error("Failed to fetch matched example")
		outcome.Reason = ErrCorpusUnavailable
		return outcome
	}
	outcome.IntentID = example.IntentID

	intent, err := r.corpus.FindIntentByID(ctx, example.IntentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithField("intent_id", example.IntentID).Warn("No response found, intent is missing")
			outcome.Reason = ErrDanglingReference
			return outcome
		}
		log.WithField("error", err.Error()).Error("Failed to fetch matched intent")
		outcome.Reason = ErrCorpusUnavailable
		return outcome
	}

	if intent.ResponseText == "" {
		log.WithField("intent_id", intent.ID).Warn("Matched intent has no response text")
		outcome.Reason = ErrDanglingReference
		return outcome
	}

	log.WithFields(logrus.Fields{
		"intent_id": intent.ID,
		"intent":    intent.Name,
	}).Info("We have a match")

	outcome.Kind = Matched
	outcome.Text = intent.ResponseText
	return outcome
}
