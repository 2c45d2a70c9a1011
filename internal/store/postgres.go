package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Store reads match reference data and appends prediction history rows.
// All reference reads treat absence as a value: a missing rating yields the
// default rating and a missing stats row yields nil, never an error.
type Store struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// Config holds Postgres store configuration
type Config struct {
	DSN          string
	MaxConns     int
	QueryTimeout time.Duration
}

// New creates a store backed by a pgx connection pool
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	return &Store{
		pool:         pool,
		queryTimeout: timeout,
		logger:       logger.With().Str("component", "postgres_store").Logger(),
	}, nil
}

// GetTeamRating returns the team's strength rating, or the default rating
// marked IsDefault when no row exists.
func (s *Store) GetTeamRating(ctx context.Context, team, league string) (models.TeamRating, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rating := models.TeamRating{Team: team, League: league}
	err := s.pool.QueryRow(ctx, `
		SELECT rating, updated_at
		FROM team_ratings
		WHERE team_name = $1 AND league = $2
	`, team, league).Scan(&rating.Rating, &rating.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		rating.Rating = models.DefaultRating
		rating.IsDefault = true
		return rating, nil
	}
	if err != nil {
		return models.TeamRating{}, fmt.Errorf("failed to query team rating: %w", err)
	}

	return rating, nil
}

// GetRecentMatches returns the team's last finished matches, newest first
func (s *Store) GetRecentMatches(ctx context.Context, team, league string, limit int) ([]models.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT home_team, away_team, home_goals, away_goals, league, played_at
		FROM matches
		WHERE (home_team = $1 OR away_team = $1) AND league = $2 AND status = 'FINISHED'
		ORDER BY played_at DESC
		LIMIT $3
	`, team, league, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetHeadToHead returns finished matches where the two teams met directly
func (s *Store) GetHeadToHead(ctx context.Context, home, away string, limit int) ([]models.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT home_team, away_team, home_goals, away_goals, league, played_at
		FROM matches
		WHERE ((home_team = $1 AND away_team = $2) OR (home_team = $2 AND away_team = $1))
		  AND status = 'FINISHED'
		ORDER BY played_at DESC
		LIMIT $3
	`, home, away, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query head-to-head: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetTeamStats returns the enriched stats row, or nil when none exists
func (s *Store) GetTeamStats(ctx context.Context, team, league string) (*models.TeamStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	stats := models.TeamStats{Team: team, League: league}
	err := s.pool.QueryRow(ctx, `
		SELECT wins, draws, losses, goals_for, goals_against,
		       form_string, home_record, away_record, injury_count
		FROM team_stats
		WHERE team_name = $1 AND league = $2
	`, team, league).Scan(
		&stats.Wins, &stats.Draws, &stats.Losses, &stats.GoalsFor, &stats.GoalsAgainst,
		&stats.FormString, &stats.HomeRecord, &stats.AwayRecord, &stats.InjuryCount,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team stats: %w", err)
	}

	return &stats, nil
}

// GetKeyPlayers returns up to limit notable squad members for the team
func (s *Store) GetKeyPlayers(ctx context.Context, team string, limit int) ([]models.KeyPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT player_name, position, is_injured
		FROM key_players
		WHERE team_name = $1
		ORDER BY importance DESC
		LIMIT $2
	`, team, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query key players: %w", err)
	}
	defer rows.Close()

	var players []models.KeyPlayer
	for rows.Next() {
		var p models.KeyPlayer
		if err := rows.Scan(&p.Name, &p.Position, &p.Injured); err != nil {
			return nil, fmt.Errorf("failed to scan key player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetStandings returns the current league table, best rank first.
// An untracked league yields an empty slice.
func (s *Store) GetStandings(ctx context.Context, league string) ([]models.StandingsRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT team_name, rank, points, wins, draws, losses
		FROM league_standings
		WHERE league = $1
		ORDER BY rank ASC
	`, league)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var table []models.StandingsRow
	for rows.Next() {
		var r models.StandingsRow
		if err := rows.Scan(&r.Team, &r.Rank, &r.Points, &r.Wins, &r.Draws, &r.Losses); err != nil {
			return nil, fmt.Errorf("failed to scan standings row: %w", err)
		}
		table = append(table, r)
	}
	return table, rows.Err()
}

// InsertHistory appends one prediction history row
func (s *Store) InsertHistory(ctx context.Context, rec *models.PredictionHistory) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO prediction_history (
			id, match_id, league, home_team, away_team,
			outcome, confidence, home_goals, away_goals,
			home_odds, draw_odds, away_odds,
			home_probability, draw_probability, away_probability,
			value_pick, risk_tier, model_edge,
			prompt_source, experiment_id, experiment_arm,
			used_fallback, input_snapshot, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
	`,
		rec.ID, rec.MatchID, rec.League, rec.HomeTeam, rec.AwayTeam,
		rec.Result.Outcome, rec.Result.Confidence, rec.Result.HomeGoals, rec.Result.AwayGoals,
		rec.Result.HomeOdds, rec.Result.DrawOdds, rec.Result.AwayOdds,
		rec.Result.HomeProbability, rec.Result.DrawProbability, rec.Result.AwayProbability,
		rec.Result.ValuePick, rec.Result.RiskTier, rec.Result.ModelEdge,
		rec.PromptSource, rec.ExperimentID, rec.ExperimentArm,
		rec.UsedFallback, rec.InputSnapshot, rec.Status, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction history: %w", err)
	}

	return nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}

func scanMatches(rows pgx.Rows) ([]models.MatchRecord, error) {
	var matches []models.MatchRecord
	for rows.Next() {
		var m models.MatchRecord
		if err := rows.Scan(&m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals, &m.League, &m.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
