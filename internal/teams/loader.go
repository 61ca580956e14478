package teams

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Petouha/who-won/internal/config"
	"github.com/Petouha/who-won/internal/constants"
	"github.com/Petouha/who-won/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Load reads team names and ratings concurrently. A missing file yields an
// empty section rather than an error.
func Load(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Table, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var names []string
	var ratings []domain.TeamRating

	g.Go(func() error {
		var err error
		if cfg.TeamsURL != "" {
			names, err = NewRemoteSource(cfg.TeamsURL).FetchNames(gCtx)
			if err != nil {
				return fmt.Errorf("failed to fetch team names: %w", err)
			}
			return nil
		}
		names, err = LoadNamesFile(cfg.TeamsPath)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", cfg.TeamsPath).Msg("team names file not found")
			return nil
		}
		return err
	})

	g.Go(func() error {
		var err error
		ratings, err = LoadRatingsFile(cfg.TeamRatingsPath)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", cfg.TeamRatingsPath).Msg("team ratings file not found")
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to load team reference data")
		return nil, err
	}

	table := NewTable(names, ratings)
	logger.Info().
		Int("teams", table.Len()).
		Int("rated_teams", len(ratings)).
		Msg("team reference data loaded")
	return table, nil
}

func LoadNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := ParseNames(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return names, nil
}

// ParseNames reads one team name per line, skipping blank lines.
func ParseNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

type ratingsFile struct {
	Teams []domain.TeamRating `yaml:"teams"`
}

func LoadRatingsFile(path string) ([]domain.TeamRating, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ratings, err := ParseRatings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ratings, nil
}

func ParseRatings(data []byte) ([]domain.TeamRating, error) {
	var file ratingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	for i, r := range file.Teams {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("team #%d has no name", i+1)
		}
	}
	return file.Teams, nil
}
