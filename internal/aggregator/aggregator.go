package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// MatchDataReader reads match reference data from the relational store
type MatchDataReader interface {
	GetTeamRating(ctx context.Context, team, league string) (models.TeamRating, error)
	GetRecentMatches(ctx context.Context, team, league string, limit int) ([]models.MatchRecord, error)
	GetHeadToHead(ctx context.Context, home, away string, limit int) ([]models.MatchRecord, error)
	GetTeamStats(ctx context.Context, team, league string) (*models.TeamStats, error)
	GetKeyPlayers(ctx context.Context, team string, limit int) ([]models.KeyPlayer, error)
	GetStandings(ctx context.Context, league string) ([]models.StandingsRow, error)
}

// BriefingCache caches assembled per-team briefings
type BriefingCache interface {
	GetBriefing(ctx context.Context, league, team string) (*models.TeamBriefing, error)
	SetBriefing(ctx context.Context, league, team string, briefing *models.TeamBriefing) error
}

// WeatherProvider returns a compact venue weather summary
type WeatherProvider interface {
	GetBrief(ctx context.Context, city string) (*models.WeatherBrief, error)
}

// SearchProvider returns ranked web-search snippets
type SearchProvider interface {
	Search(ctx context.Context, query string, num int) ([]models.SearchSnippet, error)
}

const (
	recentFormWindow = 5
	maxKeyPlayers    = 5
	maxHeadToHead    = 5
	maxSnippets      = 5
	maxContextChars  = 6000
)

// Config holds aggregation budgets
type Config struct {
	SubFetchTimeout time.Duration // per sub-source
	ContextBudget   time.Duration // overall
}

// Aggregator composes one bounded grounding context per request. Every
// sub-source is fault tolerant: a failure drops that section and nothing
// else. BuildContext never returns an error.
type Aggregator struct {
	reader  MatchDataReader
	cache   BriefingCache
	weather WeatherProvider
	search  SearchProvider
	cfg     Config
	logger  zerolog.Logger
}

// New creates a context aggregator. cache, weather and search may be nil.
func New(
	reader MatchDataReader,
	cache BriefingCache,
	weather WeatherProvider,
	search SearchProvider,
	cfg Config,
	logger zerolog.Logger,
) *Aggregator {
	if cfg.SubFetchTimeout == 0 {
		cfg.SubFetchTimeout = 4 * time.Second
	}
	if cfg.ContextBudget == 0 {
		cfg.ContextBudget = 8 * time.Second
	}
	return &Aggregator{
		reader:  reader,
		cache:   cache,
		weather: weather,
		search:  search,
		cfg:     cfg,
		logger:  logger.With().Str("component", "context_aggregator").Logger(),
	}
}

// contextParts holds each sub-section; a goroutine owns exactly one field
type contextParts struct {
	ratings     string
	homeStats   string
	awayStats   string
	homePlayers string
	awayPlayers string
	headToHead  string
	standings   string
	weather     string
	webSearch   string
}

// BuildContext assembles the grounding context for one fixture. Returns
// the empty string when every sub-source fails.
func (a *Aggregator) BuildContext(ctx context.Context, home, away, league string) string {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ContextBudget)
	defer cancel()

	var parts contextParts

	// Sub-fetches are independent; each swallows its own error so the
	// group never cancels early.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		homeBriefing := a.teamBriefing(gctx, home, league)
		awayBriefing := a.teamBriefing(gctx, away, league)
		parts.ratings = a.ratingsSection(home, away, homeBriefing, awayBriefing)
		parts.homeStats = a.statsSection(gctx, home, league, homeBriefing)
		parts.awayStats = a.statsSection(gctx, away, league, awayBriefing)
		return nil
	})

	g.Go(func() error {
		parts.homePlayers = a.playersSection(gctx, home)
		return nil
	})

	g.Go(func() error {
		parts.awayPlayers = a.playersSection(gctx, away)
		return nil
	})

	g.Go(func() error {
		parts.headToHead = a.headToHeadSection(gctx, home, away)
		return nil
	})

	g.Go(func() error {
		parts.standings = a.standingsSection(gctx, home, away, league)
		return nil
	})

	g.Go(func() error {
		parts.weather = a.weatherSection(gctx, home)
		return nil
	})

	g.Go(func() error {
		parts.webSearch = a.searchSection(gctx, home, away, league)
		return nil
	})

	_ = g.Wait()

	var sb strings.Builder
	for _, section := range []string{
		parts.ratings,
		parts.homeStats,
		parts.awayStats,
		parts.homePlayers,
		parts.awayPlayers,
		parts.headToHead,
		parts.standings,
		parts.weather,
		parts.webSearch,
	} {
		if section == "" {
			continue
		}
		sb.WriteString(section)
		sb.WriteString("\n")
	}

	blob := truncateAtRune(sb.String(), maxContextChars)

	a.logger.Debug().
		Str("home", home).
		Str("away", away).
		Int("chars", len(blob)).
		Msg("assembled grounding context")

	return blob
}

// truncateAtRune caps s at limit bytes without splitting a UTF-8 sequence
func truncateAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// teamBriefing returns the team's rating plus stats, cache-first. It never
// fails: rating falls back to the default and stats to nil.
func (a *Aggregator) teamBriefing(ctx context.Context, team, league string) *models.TeamBriefing {
	if a.cache != nil {
		if cached, err := a.cache.GetBriefing(ctx, league, team); err == nil && cached != nil {
			return cached
		}
	}

	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	briefing := &models.TeamBriefing{
		Rating: models.TeamRating{
			Team:      team,
			League:    league,
			Rating:    models.DefaultRating,
			IsDefault: true,
		},
	}

	rating, err := a.reader.GetTeamRating(fctx, team, league)
	if err != nil {
		a.logger.Warn().Err(err).Str("team", team).Msg("rating fetch failed, using default")
	} else {
		briefing.Rating = rating
	}

	stats, err := a.reader.GetTeamStats(fctx, team, league)
	if err != nil {
		a.logger.Warn().Err(err).Str("team", team).Msg("stats fetch failed")
	} else {
		briefing.Stats = stats
	}

	if a.cache != nil {
		if err := a.cache.SetBriefing(ctx, league, team, briefing); err != nil {
			a.logger.Debug().Err(err).Str("team", team).Msg("failed to cache briefing")
		}
	}

	return briefing
}

// ratingsSection is always includable: defaults still carry the difference
func (a *Aggregator) ratingsSection(home, away string, hb, ab *models.TeamBriefing) string {
	diff := hb.Rating.Rating - ab.Rating.Rating
	return fmt.Sprintf(
		"TEAM STRENGTH RATINGS:\n%s: %.0f\n%s: %.0f\nRating difference (home - away): %+.0f\n",
		home, hb.Rating.Rating, away, ab.Rating.Rating, diff,
	)
}

func (a *Aggregator) statsSection(ctx context.Context, team, league string, briefing *models.TeamBriefing) string {
	if briefing.Stats != nil {
		s := briefing.Stats
		return fmt.Sprintf(
			"%s SEASON STATS:\nRecord: %d-%d-%d, Goals: %d scored / %d conceded\nRecent form: %s\nHome record: %s, Away record: %s\nInjuries: %d\n",
			strings.ToUpper(team), s.Wins, s.Draws, s.Losses, s.GoalsFor, s.GoalsAgainst,
			s.FormString, s.HomeRecord, s.AwayRecord, s.InjuryCount,
		)
	}

	// No enriched row: derive a compact form string from the last matches
	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	matches, err := a.reader.GetRecentMatches(fctx, team, league, recentFormWindow)
	if err != nil {
		metrics.ContextOmissionsTotal.WithLabelValues("stats").Inc()
		return ""
	}
	if len(matches) == 0 {
		return ""
	}

	var form strings.Builder
	for _, m := range matches {
		form.WriteString(m.ResultFor(team))
	}
	return fmt.Sprintf("%s RECENT FORM (last %d): %s\n", strings.ToUpper(team), len(matches), form.String())
}

func (a *Aggregator) playersSection(ctx context.Context, team string) string {
	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	players, err := a.reader.GetKeyPlayers(fctx, team, maxKeyPlayers)
	if err != nil {
		a.logger.Warn().Err(err).Str("team", team).Msg("key players fetch failed")
		metrics.ContextOmissionsTotal.WithLabelValues("key_players").Inc()
		return ""
	}
	if len(players) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s KEY PLAYERS:\n", strings.ToUpper(team))
	for _, p := range players {
		if p.Injured {
			fmt.Fprintf(&sb, "- %s (%s) [INJURED]\n", p.Name, p.Position)
		} else {
			fmt.Fprintf(&sb, "- %s (%s)\n", p.Name, p.Position)
		}
	}
	return sb.String()
}

func (a *Aggregator) headToHeadSection(ctx context.Context, home, away string) string {
	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	matches, err := a.reader.GetHeadToHead(fctx, home, away, maxHeadToHead)
	if err != nil {
		a.logger.Warn().Err(err).Msg("head-to-head fetch failed")
		metrics.ContextOmissionsTotal.WithLabelValues("head_to_head").Inc()
		return ""
	}
	// Used only when the teams actually met before
	if len(matches) == 0 {
		return ""
	}

	var homeWins, draws, awayWins int
	var sb strings.Builder
	fmt.Fprintf(&sb, "HEAD-TO-HEAD (last %d meetings):\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&sb, "- %s %d-%d %s\n", m.HomeTeam, m.HomeGoals, m.AwayGoals, m.AwayTeam)
		switch m.ResultFor(home) {
		case "W":
			homeWins++
		case "L":
			awayWins++
		default:
			draws++
		}
	}
	fmt.Fprintf(&sb, "Record: %s %d wins, %d draws, %s %d wins\n", home, homeWins, draws, away, awayWins)
	return sb.String()
}

func (a *Aggregator) standingsSection(ctx context.Context, home, away, league string) string {
	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	table, err := a.reader.GetStandings(fctx, league)
	if err != nil {
		a.logger.Warn().Err(err).Str("league", league).Msg("standings fetch failed")
		metrics.ContextOmissionsTotal.WithLabelValues("standings").Inc()
		return ""
	}
	if len(table) == 0 {
		return ""
	}

	var lines []string
	for _, row := range table {
		if row.Team != home && row.Team != away {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: rank %d, %d pts (%d-%d-%d)",
			row.Team, row.Rank, row.Points, row.Wins, row.Draws, row.Losses))
	}
	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("LEAGUE STANDINGS (%s):\n%s\n", league, strings.Join(lines, "\n"))
}

func (a *Aggregator) weatherSection(ctx context.Context, homeTeam string) string {
	if a.weather == nil {
		return ""
	}

	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	brief, err := a.weather.GetBrief(fctx, homeTeam)
	if err != nil {
		a.logger.Debug().Err(err).Msg("weather fetch failed, omitting")
		metrics.ContextOmissionsTotal.WithLabelValues("weather").Inc()
		return ""
	}
	return fmt.Sprintf("MATCH DAY WEATHER:\n%s, %.0f°C, wind %.0f kph\n",
		brief.Condition, brief.TempCelsius, brief.WindKph)
}

func (a *Aggregator) searchSection(ctx context.Context, home, away, league string) string {
	if a.search == nil {
		return ""
	}

	fctx, cancel := context.WithTimeout(ctx, a.cfg.SubFetchTimeout)
	defer cancel()

	query := fmt.Sprintf("%s vs %s %s preview, form, injuries, odds", home, away, league)
	snippets, err := a.search.Search(fctx, query, maxSnippets)
	if err != nil {
		a.logger.Debug().Err(err).Msg("web search failed, omitting")
		metrics.ContextOmissionsTotal.WithLabelValues("web_search").Inc()
		return ""
	}
	if len(snippets) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("LATEST NEWS AND ANALYSIS:\n")
	for _, s := range snippets {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Title, s.Snippet)
	}
	return sb.String()
}
