package sync

import (
	"context"
	"fmt"

	"github.com/yourusername/f1sync/internal/ergast"
)

// UpdateSeason runs every pipeline for one season in dependency order:
// reference entities first, then the race schedule, then the per-race
// records that hang off it. The season and status vocabularies are
// global, so they sync unscoped.
func (s *Service) UpdateSeason(ctx context.Context, season int) ([]*Summary, error) {
	var summaries []*Summary

	collect := func(summary *Summary, err error) error {
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
		return nil
	}

	if err := collect(s.UpdateSeasons(ctx, ergast.Request{})); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateStatuses(ctx, ergast.Request{})); err != nil {
		return summaries, err
	}

	scoped := ergast.Request{Season: season}

	if err := collect(s.UpdateDrivers(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateConstructors(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateCircuits(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateRaces(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateQualifying(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateLapTimes(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdatePitStops(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateSprints(ctx, scoped)); err != nil {
		return summaries, err
	}

	resultSummaries, err := s.UpdateResults(ctx, scoped)
	summaries = append(summaries, resultSummaries...)
	if err != nil {
		return summaries, err
	}

	if err := collect(s.UpdateConstructorStandings(ctx, scoped)); err != nil {
		return summaries, err
	}
	if err := collect(s.UpdateDriverStandings(ctx, scoped)); err != nil {
		return summaries, err
	}

	return summaries, nil
}

// UpdateRange runs UpdateSeason for every season in [from, to]
func (s *Service) UpdateRange(ctx context.Context, from, to int) ([]*Summary, error) {
	if from > to {
		return nil, fmt.Errorf("invalid season range %d-%d", from, to)
	}

	var summaries []*Summary
	for season := from; season <= to; season++ {
		s.logger.WithField("season", season).Info("Syncing season")

		seasonSummaries, err := s.UpdateSeason(ctx, season)
		summaries = append(summaries, seasonSummaries...)
		if err != nil {
			return summaries, fmt.Errorf("season %d: %w", season, err)
		}
	}
	return summaries, nil
}
