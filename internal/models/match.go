package models

import "time"

// DefaultRating is used for any team with no recorded strength rating
const DefaultRating = 1500.0

// TeamRating is one Elo-style strength rating. IsDefault marks a rating
// that was back-filled because the store had no row for the team.
type TeamRating struct {
	Team      string    `json:"team"`
	League    string    `json:"league"`
	Rating    float64   `json:"rating"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchRecord is one finished match from the relational store
type MatchRecord struct {
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeGoals int       `json:"home_goals"`
	AwayGoals int       `json:"away_goals"`
	League    string    `json:"league"`
	PlayedAt  time.Time `json:"played_at"`
}

// ResultFor returns W/D/L from the given team's perspective
func (m MatchRecord) ResultFor(team string) string {
	diff := m.HomeGoals - m.AwayGoals
	if m.AwayTeam == team {
		diff = -diff
	}
	switch {
	case diff > 0:
		return "W"
	case diff < 0:
		return "L"
	default:
		return "D"
	}
}

// TeamStats is the enriched per-team statistics row. It is optional data:
// a team without a stats row falls back to form derived from raw matches.
type TeamStats struct {
	Team         string `json:"team"`
	League       string `json:"league"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	FormString   string `json:"form_string"`
	HomeRecord   string `json:"home_record"`
	AwayRecord   string `json:"away_record"`
	InjuryCount  int    `json:"injury_count"`
}

// KeyPlayer is one notable squad member, flagged when unavailable
type KeyPlayer struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Injured  bool   `json:"injured"`
}

// StandingsRow is one team's line in the current league table
type StandingsRow struct {
	Team   string `json:"team"`
	Rank   int    `json:"rank"`
	Points int    `json:"points"`
	Wins   int    `json:"wins"`
	Draws  int    `json:"draws"`
	Losses int    `json:"losses"`
}

// TeamBriefing bundles the cacheable per-team context inputs: the rating
// plus the enriched stats row when one exists.
type TeamBriefing struct {
	Rating TeamRating `json:"rating"`
	Stats  *TeamStats `json:"stats,omitempty"`
}

// SearchSnippet is one web-search grounding result
type SearchSnippet struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// WeatherBrief is a compact venue weather summary
type WeatherBrief struct {
	Condition   string  `json:"condition"`
	TempCelsius float64 `json:"temp_celsius"`
	WindKph     float64 `json:"wind_kph"`
}

// PromptTemplate is the instruction text governing one request, tagged
// with where it came from: "default", "optimized", or "ab_test_<id>_<arm>".
type PromptTemplate struct {
	Text          string `json:"text"`
	Source        string `json:"source"`
	ExperimentID  string `json:"experiment_id,omitempty"`
	ExperimentArm string `json:"experiment_arm,omitempty"`
}

// Experiment is one A/B test as reported by the experimentation service
type Experiment struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Status string          `json:"status"`
	Arms   []ExperimentArm `json:"arms"`
}

// ExperimentArm is one competing configuration inside an experiment
type ExperimentArm struct {
	Name      string `json:"name"`
	IsControl bool   `json:"is_control"`
	Prompt    string `json:"prompt,omitempty"`
}

// ExperimentTypePrompt marks experiments whose arms carry prompt overrides
const ExperimentTypePrompt = "PROMPT"

// ExperimentStatusActive marks experiments eligible for assignment
const ExperimentStatusActive = "ACTIVE"
