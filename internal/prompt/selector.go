package prompt

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// DefaultTemplate is the built-in instruction text used when neither the
// optimizer nor an experiment overrides it.
const DefaultTemplate = `You are an expert football match analyst. Predict the outcome of the match between {home_team} and {away_team} in the {league}.

Respond with a single JSON object and nothing else, using exactly these fields:
{
  "outcome": "HOME_WIN" | "DRAW" | "AWAY_WIN",
  "confidence": <integer 0-100>,
  "home_goals": <integer>,
  "away_goals": <integer>,
  "reasoning": "<2-3 sentence analysis>",
  "key_insight": "<single most important factor>",
  "betting_angle": "<one recommended angle>",
  "odds": {"home": <decimal>, "draw": <decimal>, "away": <decimal>},
  "probabilities": {"home": <int>, "draw": <int>, "away": <int>},
  "value_pick": <boolean>,
  "risk_tier": "LOW" | "MEDIUM" | "HIGH",
  "model_edge": <number>,
  "system_record": "<short self-description of the approach used>"
}
The three probabilities must sum to 100 and all odds must be greater than 1.0.`

// SourceDefault and SourceOptimized tag where the chosen template came from
const (
	SourceDefault   = "default"
	SourceOptimized = "optimized"
)

// TemplateOptimizer is the prompt-optimization service
type TemplateOptimizer interface {
	BestTemplate(ctx context.Context, league string) (string, error)
}

// ExperimentLister is the A/B testing service
type ExperimentLister interface {
	ActiveExperiments(ctx context.Context) ([]models.Experiment, error)
}

// TemplateCache caches the optimizer's best template per league
type TemplateCache interface {
	GetPromptTemplate(ctx context.Context, league string) (*models.PromptTemplate, error)
	SetPromptTemplate(ctx context.Context, league string, tmpl *models.PromptTemplate) error
}

// Selector resolves which instruction template governs a request. Both
// collaborators are advisory: any error means "no override" and selection
// itself never fails.
type Selector struct {
	optimizer       TemplateOptimizer
	experiments     ExperimentLister
	cache           TemplateCache
	advisoryTimeout time.Duration
	logger          zerolog.Logger
}

// New creates a prompt selector. optimizer, experiments and cache may be nil.
func New(
	optimizer TemplateOptimizer,
	experiments ExperimentLister,
	cache TemplateCache,
	advisoryTimeout time.Duration,
	logger zerolog.Logger,
) *Selector {
	if advisoryTimeout == 0 {
		advisoryTimeout = 4 * time.Second
	}
	return &Selector{
		optimizer:       optimizer,
		experiments:     experiments,
		cache:           cache,
		advisoryTimeout: advisoryTimeout,
		logger:          logger.With().Str("component", "prompt_selector").Logger(),
	}
}

// Select resolves the template for one request. Resolution order: optimized
// template for the league, then an active PROMPT experiment arm (when a
// matchID is present), then the built-in default.
func (s *Selector) Select(ctx context.Context, league, matchID string) models.PromptTemplate {
	selected := models.PromptTemplate{
		Text:   DefaultTemplate,
		Source: SourceDefault,
	}

	if optimized := s.optimizedTemplate(ctx, league); optimized != "" {
		selected.Text = optimized
		selected.Source = SourceOptimized
	}

	// Experiment assignment requires a stable key; without a matchID the
	// request cannot participate.
	if matchID != "" {
		s.applyExperiment(ctx, matchID, &selected)
	}

	s.logger.Debug().
		Str("league", league).
		Str("match_id", matchID).
		Str("source", selected.Source).
		Msg("selected prompt template")

	return selected
}

func (s *Selector) optimizedTemplate(ctx context.Context, league string) string {
	if s.optimizer == nil {
		return ""
	}

	if s.cache != nil {
		if cached, err := s.cache.GetPromptTemplate(ctx, league); err == nil && cached != nil {
			return cached.Text
		}
	}

	actx, cancel := context.WithTimeout(ctx, s.advisoryTimeout)
	defer cancel()

	text, err := s.optimizer.BestTemplate(actx, league)
	if err != nil {
		s.logger.Warn().Err(err).Str("league", league).Msg("prompt optimizer unavailable")
		return ""
	}
	if text == "" {
		return ""
	}

	if s.cache != nil {
		tmpl := &models.PromptTemplate{Text: text, Source: SourceOptimized}
		if err := s.cache.SetPromptTemplate(ctx, league, tmpl); err != nil {
			s.logger.Debug().Err(err).Msg("failed to cache prompt template")
		}
	}

	return text
}

// applyExperiment assigns the match to an arm of the first active PROMPT
// experiment. The arm is always recorded on the template so the experiment
// stays analyzable; the text is overridden only for a non-control arm.
func (s *Selector) applyExperiment(ctx context.Context, matchID string, selected *models.PromptTemplate) {
	if s.experiments == nil {
		return
	}

	actx, cancel := context.WithTimeout(ctx, s.advisoryTimeout)
	defer cancel()

	active, err := s.experiments.ActiveExperiments(actx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ab testing service unavailable")
		return
	}

	for _, exp := range active {
		if exp.Type != models.ExperimentTypePrompt || len(exp.Arms) == 0 {
			continue
		}

		arm := AssignArm(exp.ID, matchID, exp.Arms)
		selected.ExperimentID = exp.ID
		selected.ExperimentArm = arm.Name

		// The control arm keeps whatever template was already selected
		if !arm.IsControl && arm.Prompt != "" {
			selected.Text = arm.Prompt
			selected.Source = fmt.Sprintf("ab_test_%s_%s", exp.ID, arm.Name)
		}
		return
	}
}

// AssignArm deterministically maps (experimentID, matchID) onto one arm.
// A pure hash keeps repeated requests for one match in the same arm even
// when the experimentation service cannot guarantee stable assignment.
func AssignArm(experimentID, matchID string, arms []models.ExperimentArm) models.ExperimentArm {
	// Arm order from the service is not guaranteed; sort for stability
	sorted := make([]models.ExperimentArm, len(arms))
	copy(sorted, arms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h := fnv.New64a()
	h.Write([]byte(experimentID))
	h.Write([]byte(":"))
	h.Write([]byte(matchID))

	return sorted[h.Sum64()%uint64(len(sorted))]
}
