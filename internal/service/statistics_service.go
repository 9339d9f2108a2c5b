package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrportal/internal/model"
	"hrportal/internal/session"
	"hrportal/pkg/apperror"
)

// topCategoryLimit caps the category ranking.
const topCategoryLimit = 5

// StatisticsService reports request counts for a company over a time range.
type StatisticsService interface {
	GetStatistics(ctx context.Context, sess *session.Session, companyID uuid.UUID, startDate, endDate time.Time) (*model.RequestStatistics, error)
}

type statisticsService struct {
	aggregator AggregatorService
	logger     *zap.Logger
}

// NewStatisticsService builds on the aggregator so scoping and visibility rules stay in one place.
func NewStatisticsService(aggregator AggregatorService, logger *zap.Logger) StatisticsService {
	return &statisticsService{aggregator: aggregator, logger: logger}
}

func (s *statisticsService) GetStatistics(ctx context.Context, sess *session.Session, companyID uuid.UUID, startDate, endDate time.Time) (*model.RequestStatistics, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", apperror.ErrValidation)
	}

	records, err := s.aggregator.ListUnified(ctx, sess, ListFilter{CompanyID: companyID})
	if err != nil {
		return nil, err
	}

	stats := &model.RequestStatistics{
		ByStatus:           make(map[model.CanonicalStatus]int),
		ByKind:             make(map[model.RequestKind]int),
		TopCategories:      []model.CategoryRanking{},
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
	}
	categories := make(map[string]int)

	for _, r := range records {
		if r.SubmittedAt.Before(startDate) || r.SubmittedAt.After(endDate) {
			continue
		}
		stats.Total++
		stats.ByStatus[r.Status]++
		stats.ByKind[r.Kind]++
		categories[r.Category]++

		if r.Status == model.CanonicalPending || r.Status == model.CanonicalInReview {
			if stats.OldestOpen == nil || r.SubmittedAt.Before(*stats.OldestOpen) {
				at := r.SubmittedAt
				stats.OldestOpen = &at
			}
		}
	}

	for category, count := range categories {
		stats.TopCategories = append(stats.TopCategories, model.CategoryRanking{Category: category, Count: count})
	}
	sort.Slice(stats.TopCategories, func(i, j int) bool {
		a, b := stats.TopCategories[i], stats.TopCategories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	if len(stats.TopCategories) > topCategoryLimit {
		stats.TopCategories = stats.TopCategories[:topCategoryLimit]
	}

	s.logger.Debug("request statistics computed",
		zap.Int("total", stats.Total),
		zap.Time("start", startDate),
		zap.Time("end", endDate))
	return stats, nil
}
