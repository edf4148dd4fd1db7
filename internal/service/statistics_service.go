package service

import (
	"context"
	"errors"
	"log"
	"time"

	"yuyingbao/internal/api"
	"yuyingbao/internal/models"
	"yuyingbao/internal/recommend"
	"yuyingbao/internal/repository"
	"yuyingbao/internal/session"
	"yuyingbao/internal/stats"
)

// StatisticsService produces daily and trend summaries for the active
// baby. The server's today endpoint is preferred; when it is down the
// summary is computed locally from the record list so the screen still
// renders.
type StatisticsService struct {
	client  *api.Client
	records *repository.RecordRepository
	session *session.Store
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(client *api.Client, records *repository.RecordRepository, sess *session.Store) *StatisticsService {
	return &StatisticsService{client: client, records: records, session: sess}
}

// Today returns the active baby's summary for the current day
func (s *StatisticsService) Today(ctx context.Context, now time.Time) (*models.TodayStatistics, error) {
	baby, err := s.session.RequireBaby()
	if err != nil {
		return nil, err
	}

	summary, err := s.client.TodayStatistics(ctx, baby.ID)
	if err == nil {
		if summary.Suggestion == "" {
			summary.Suggestion = s.suggestion(baby, summary.FeedingTotalMl, now)
		}
		return summary, nil
	}
	if errors.Is(err, api.ErrSessionExpired) {
		return nil, err
	}

	log.Printf("today endpoint unavailable, computing locally: %v", err)
	return s.computeToday(ctx, baby, now)
}

// computeToday builds the daily summary from the raw record list
func (s *StatisticsService) computeToday(ctx context.Context, baby *models.Baby, now time.Time) (*models.TodayStatistics, error) {
	start, end := stats.DayWindow(now)
	records, err := s.records.FetchRange(ctx, baby.ID, start, end)
	if err != nil {
		return nil, err
	}

	feeding := stats.AggregateFeeding(records, start, end)
	diaper := stats.AggregateDiaper(records, start, end)

	return &models.TodayStatistics{
		FeedingCount:   feeding.Count,
		FeedingTotalMl: feeding.TotalMl,
		DiaperCount:    diaper.Count,
		Suggestion:     s.suggestion(baby, feeding.TotalMl, now),
	}, nil
}

// suggestion classifies the day's intake against the age bracket
func (s *StatisticsService) suggestion(baby *models.Baby, totalMl float64, now time.Time) string {
	advice := recommend.ClassifyFeeding(baby.AgeInMonths(now), totalMl)
	return advice.Message
}

// TrendReport bundles the aggregates the statistics screen shows for
// one time window.
type TrendReport struct {
	Feeding models.FeedingAggregate
	Diaper  models.DiaperAggregate
	Growth  models.GrowthAggregate

	FeedingSeries []models.SeriesPoint
	DiaperSeries  []models.SeriesPoint
}

// Trend computes the aggregates and chart series for [start, end]
func (s *StatisticsService) Trend(ctx context.Context, start, end time.Time, granularity stats.Granularity) (*TrendReport, error) {
	baby, err := s.session.RequireBaby()
	if err != nil {
		return nil, err
	}

	records, err := s.records.FetchRange(ctx, baby.ID, start, end)
	if err != nil {
		return nil, err
	}

	return &TrendReport{
		Feeding:       stats.AggregateFeeding(records, start, end),
		Diaper:        stats.AggregateDiaper(records, start, end),
		Growth:        stats.AggregateGrowth(records, start, end),
		FeedingSeries: stats.FeedingSeries(records, start, end, granularity),
		DiaperSeries:  stats.DiaperSeries(records, start, end, granularity),
	}, nil
}
