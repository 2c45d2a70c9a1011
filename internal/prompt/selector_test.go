package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// fakeOptimizer returns one canned template
type fakeOptimizer struct {
	template string
	err      error
	calls    int
}

func (f *fakeOptimizer) BestTemplate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.template, nil
}

// fakeLister returns canned experiments
type fakeLister struct {
	experiments []models.Experiment
	err         error
}

func (f *fakeLister) ActiveExperiments(_ context.Context) ([]models.Experiment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.experiments, nil
}

// fakeTemplateCache is an in-memory TemplateCache
type fakeTemplateCache struct {
	templates map[string]*models.PromptTemplate
}

func (f *fakeTemplateCache) GetPromptTemplate(_ context.Context, league string) (*models.PromptTemplate, error) {
	if t, ok := f.templates[league]; ok {
		return t, nil
	}
	return nil, errors.New("not found in cache")
}

func (f *fakeTemplateCache) SetPromptTemplate(_ context.Context, league string, tmpl *models.PromptTemplate) error {
	f.templates[league] = tmpl
	return nil
}

// testSelectorSetup is a helper struct to hold test dependencies
type testSelectorSetup struct {
	selector  *Selector
	optimizer *fakeOptimizer
	lister    *fakeLister
	cache     *fakeTemplateCache
}

func setupTestSelector() *testSelectorSetup {
	optimizer := &fakeOptimizer{}
	lister := &fakeLister{}
	cache := &fakeTemplateCache{templates: map[string]*models.PromptTemplate{}}
	selector := New(optimizer, lister, cache, time.Second, zerolog.Nop())
	return &testSelectorSetup{selector: selector, optimizer: optimizer, lister: lister, cache: cache}
}

func promptExperiment() models.Experiment {
	return models.Experiment{
		ID:     "exp-7",
		Type:   models.ExperimentTypePrompt,
		Status: models.ExperimentStatusActive,
		Arms: []models.ExperimentArm{
			{Name: "control", IsControl: true},
			{Name: "variant_a", Prompt: "Variant prompt for {home_team} vs {away_team}."},
		},
	}
}

// TestSelect_Default tests selection with no overrides available
func TestSelect_Default(t *testing.T) {
	setup := setupTestSelector()

	selected := setup.selector.Select(context.Background(), "Premier League", "match-42")

	assert.Equal(t, DefaultTemplate, selected.Text)
	assert.Equal(t, SourceDefault, selected.Source)
}

// TestSelect_Optimized tests the optimizer override
func TestSelect_Optimized(t *testing.T) {
	setup := setupTestSelector()
	setup.optimizer.template = "Tuned prompt for {league}."

	selected := setup.selector.Select(context.Background(), "Premier League", "match-42")

	assert.Equal(t, "Tuned prompt for {league}.", selected.Text)
	assert.Equal(t, SourceOptimized, selected.Source)
}

// TestSelect_OptimizerErrorSwallowed tests that an optimizer failure means
// no override
func TestSelect_OptimizerErrorSwallowed(t *testing.T) {
	setup := setupTestSelector()
	setup.optimizer.err = errors.New("optimizer down")

	selected := setup.selector.Select(context.Background(), "Premier League", "match-42")

	assert.Equal(t, DefaultTemplate, selected.Text)
	assert.Equal(t, SourceDefault, selected.Source)
}

// TestSelect_OptimizedTemplateCached tests the cache-first lookup
func TestSelect_OptimizedTemplateCached(t *testing.T) {
	setup := setupTestSelector()
	setup.optimizer.template = "Tuned prompt."

	setup.selector.Select(context.Background(), "Premier League", "match-42")
	setup.selector.Select(context.Background(), "Premier League", "match-43")

	assert.Equal(t, 1, setup.optimizer.calls)
}

// TestSelect_ExperimentOverride tests a non-control arm overriding the text
func TestSelect_ExperimentOverride(t *testing.T) {
	setup := setupTestSelector()
	setup.lister.experiments = []models.Experiment{promptExperiment()}

	// Find a match id that lands in the variant arm
	var variantMatch string
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"} {
		arm := AssignArm("exp-7", id, promptExperiment().Arms)
		if arm.Name == "variant_a" {
			variantMatch = id
			break
		}
	}
	require.NotEmpty(t, variantMatch)

	selected := setup.selector.Select(context.Background(), "Premier League", variantMatch)

	assert.Equal(t, "Variant prompt for {home_team} vs {away_team}.", selected.Text)
	assert.Equal(t, "ab_test_exp-7_variant_a", selected.Source)
	assert.Equal(t, "exp-7", selected.ExperimentID)
	assert.Equal(t, "variant_a", selected.ExperimentArm)
}

// TestSelect_ControlArmKeepsTemplate tests that the control arm records the
// assignment without changing the template
func TestSelect_ControlArmKeepsTemplate(t *testing.T) {
	setup := setupTestSelector()
	setup.lister.experiments = []models.Experiment{promptExperiment()}

	var controlMatch string
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8"} {
		arm := AssignArm("exp-7", id, promptExperiment().Arms)
		if arm.IsControl {
			controlMatch = id
			break
		}
	}
	require.NotEmpty(t, controlMatch)

	selected := setup.selector.Select(context.Background(), "Premier League", controlMatch)

	assert.Equal(t, DefaultTemplate, selected.Text)
	assert.Equal(t, SourceDefault, selected.Source)
	assert.Equal(t, "exp-7", selected.ExperimentID)
	assert.Equal(t, "control", selected.ExperimentArm)
}

// TestSelect_NoMatchIDSkipsExperiment tests that anonymous requests never
// join an experiment
func TestSelect_NoMatchIDSkipsExperiment(t *testing.T) {
	setup := setupTestSelector()
	setup.lister.experiments = []models.Experiment{promptExperiment()}

	selected := setup.selector.Select(context.Background(), "Premier League", "")

	assert.Empty(t, selected.ExperimentID)
	assert.Empty(t, selected.ExperimentArm)
}

// TestSelect_ListerErrorSwallowed tests that an experiment-service failure
// means no assignment
func TestSelect_ListerErrorSwallowed(t *testing.T) {
	setup := setupTestSelector()
	setup.lister.err = errors.New("ab service down")

	selected := setup.selector.Select(context.Background(), "Premier League", "match-42")

	assert.Equal(t, DefaultTemplate, selected.Text)
	assert.Empty(t, selected.ExperimentID)
}

// TestSelect_IgnoresNonPromptExperiments tests experiment type filtering
func TestSelect_IgnoresNonPromptExperiments(t *testing.T) {
	setup := setupTestSelector()
	setup.lister.experiments = []models.Experiment{
		{
			ID:     "exp-ui",
			Type:   "UI",
			Status: models.ExperimentStatusActive,
			Arms:   []models.ExperimentArm{{Name: "a"}, {Name: "b"}},
		},
	}

	selected := setup.selector.Select(context.Background(), "Premier League", "match-42")

	assert.Empty(t, selected.ExperimentID)
}

// TestAssignArm_Stable tests that arm assignment is a pure function of the
// experiment and match identifiers
func TestAssignArm_Stable(t *testing.T) {
	arms := promptExperiment().Arms

	first := AssignArm("exp-7", "match-42", arms)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Name, AssignArm("exp-7", "match-42", arms).Name)
	}
}

// TestAssignArm_OrderIndependent tests that arm ordering from the service
// does not change the assignment
func TestAssignArm_OrderIndependent(t *testing.T) {
	arms := promptExperiment().Arms
	reversed := []models.ExperimentArm{arms[1], arms[0]}

	for _, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
		assert.Equal(t, AssignArm("exp-7", id, arms).Name, AssignArm("exp-7", id, reversed).Name)
	}
}

// TestAssignArm_SpreadsAcrossArms tests that different matches do not all
// land in one arm
func TestAssignArm_SpreadsAcrossArms(t *testing.T) {
	arms := promptExperiment().Arms

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		arm := AssignArm("exp-7", string(rune('a'+i%26))+"-match", arms)
		seen[arm.Name] = true
	}
	assert.Len(t, seen, 2)
}
