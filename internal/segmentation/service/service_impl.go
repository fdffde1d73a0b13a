// Package service implements the read-side segmentation facade on top of the
// pure scoring packages and the injected order-facts provider.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gogsia86/farmers-market-sub007/internal/cache"
	"github.com/gogsia86/farmers-market-sub007/internal/clock"
	"github.com/gogsia86/farmers-market-sub007/internal/config"
	orderdomain "github.com/gogsia86/farmers-market-sub007/internal/order/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/churn"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/cohort"
	segdomain "github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/profile"
	"github.com/gogsia86/farmers-market-sub007/internal/segmentation/rfm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const distributionCacheKey = "segment_distribution"

type Service struct {
	log   *zap.Logger
	facts orderdomain.FactsProvider
	clock clock.Clock

	concurrency  int
	sweepTimeout time.Duration
	cacheTTL     time.Duration
	distribution cache.Cache[string, map[segdomain.Segment]int]
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Facts  orderdomain.FactsProvider
	Clock  clock.Clock
	Config config.Config
}

func NewService(p ServiceParam) segdomain.Service {
	concurrency := p.Config.Sweep.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	var distribution cache.Cache[string, map[segdomain.Segment]int]
	if p.Config.Sweep.DistributionCacheTTL > 0 {
		distribution = cache.NewTTLCache[string, map[segdomain.Segment]int]()
	} else {
		distribution = cache.NoopCache[string, map[segdomain.Segment]int]{}
	}

	return &Service{
		log:          p.Log.Named("segmentation.service"),
		facts:        p.Facts,
		clock:        p.Clock,
		concurrency:  concurrency,
		sweepTimeout: p.Config.Sweep.Timeout,
		cacheTTL:     p.Config.Sweep.DistributionCacheTTL,
		distribution: distribution,
	}
}

func (s *Service) GetSegment(ctx context.Context, userID string) (*segdomain.RFMScore, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.facts.CompletedOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	return rfm.Score(id.String(), orders, s.clock.Now()), nil
}

func (s *Service) GetBehavioralProfile(ctx context.Context, userID string) (*segdomain.BehavioralProfile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.facts.CompletedOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Build(id.String(), orders, s.clock.Now()), nil
}

func (s *Service) PredictChurn(ctx context.Context, userID string) (*segdomain.ChurnPrediction, error) {
	p, err := s.GetBehavioralProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return churn.Predict(p), nil
}

func (s *Service) UsersInSegment(ctx context.Context, segment segdomain.Segment) ([]string, error) {
	if !segment.Valid() {
		return nil, segdomain.ErrInvalidSegment
	}

	scores, err := s.sweepScores(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]string, 0)
	for _, score := range scores {
		if score.Segment == segment {
			users = append(users, score.UserID)
		}
	}
	return users, nil
}

func (s *Service) GetSegmentDistribution(ctx context.Context) (map[segdomain.Segment]int, error) {
	if cached, ok := s.distribution.Get(distributionCacheKey); ok {
		return cloneDistribution(cached), nil
	}

	scores, err := s.sweepScores(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[segdomain.Segment]int, len(segdomain.AllSegments()))
	for _, segment := range segdomain.AllSegments() {
		counts[segment] = 0
	}
	for _, score := range scores {
		counts[score.Segment]++
	}

	s.distribution.Set(distributionCacheKey, cloneDistribution(counts), s.cacheTTL)
	return counts, nil
}

func (s *Service) GetHighRiskUsers(ctx context.Context, threshold float64) ([]segdomain.ChurnPrediction, error) {
	if threshold <= 0 {
		threshold = segdomain.DefaultHighRiskThreshold
	}
	if threshold > 1 {
		return nil, segdomain.ErrInvalidThreshold
	}

	predictions, err := s.sweepPredictions(ctx)
	if err != nil {
		return nil, err
	}

	highRisk := make([]segdomain.ChurnPrediction, 0)
	for _, p := range predictions {
		if p.ChurnProbability >= threshold {
			highRisk = append(highRisk, p)
		}
	}
	sort.SliceStable(highRisk, func(i, j int) bool {
		return highRisk[i].ChurnProbability > highRisk[j].ChurnProbability
	})
	return highRisk, nil
}

func (s *Service) PerformCohortAnalysis(ctx context.Context, start, end time.Time) ([]segdomain.CohortRecord, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, segdomain.ErrInvalidDateRange
	}

	ctx, cancel := s.sweepContext(ctx)
	defer cancel()

	roster, err := s.facts.ListActiveCustomers(ctx)
	if err != nil {
		return nil, err
	}

	inRange := make([]orderdomain.ActiveCustomer, 0, len(roster))
	for _, customer := range roster {
		if customer.CreatedAt.Before(start) || customer.CreatedAt.After(end) {
			continue
		}
		inRange = append(inRange, customer)
	}

	users := make([]cohort.UserOrders, len(inRange))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, customer := range inRange {
		i, customer := i, customer
		group.Go(func() error {
			orders, err := s.facts.CompletedOrders(groupCtx, customer.ID)
			if err != nil {
				return err
			}
			users[i] = cohort.UserOrders{
				UserID:   customer.ID.String(),
				SignupAt: customer.CreatedAt,
				Orders:   orders,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return cohort.Analyze(users), nil
}

func (s *Service) SegmentDefinition(segment segdomain.Segment) (segdomain.SegmentDefinition, bool) {
	return rfm.Definition(segment)
}

// sweepScores computes the RFM score for every active customer. Users with
// no completed orders are excluded. The sweep fails whole on the first
// data-source error.
func (s *Service) sweepScores(ctx context.Context) ([]segdomain.RFMScore, error) {
	ctx, cancel := s.sweepContext(ctx)
	defer cancel()

	roster, err := s.facts.ListActiveCustomers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	results := make([]*segdomain.RFMScore, len(roster))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, customer := range roster {
		i, customer := i, customer
		group.Go(func() error {
			orders, err := s.facts.CompletedOrders(groupCtx, customer.ID)
			if err != nil {
				return err
			}
			results[i] = rfm.Score(customer.ID.String(), orders, now)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	scores := make([]segdomain.RFMScore, 0, len(results))
	for _, score := range results {
		if score != nil {
			scores = append(scores, *score)
		}
	}
	return scores, nil
}

// sweepPredictions computes the churn prediction for every active customer
// with order history.
func (s *Service) sweepPredictions(ctx context.Context) ([]segdomain.ChurnPrediction, error) {
	ctx, cancel := s.sweepContext(ctx)
	defer cancel()

	roster, err := s.facts.ListActiveCustomers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	results := make([]*segdomain.ChurnPrediction, len(roster))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, customer := range roster {
		i, customer := i, customer
		group.Go(func() error {
			orders, err := s.facts.CompletedOrders(groupCtx, customer.ID)
			if err != nil {
				return err
			}
			results[i] = churn.Predict(profile.Build(customer.ID.String(), orders, now))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	predictions := make([]segdomain.ChurnPrediction, 0, len(results))
	for _, p := range results {
		if p != nil {
			predictions = append(predictions, *p)
		}
	}
	return predictions, nil
}

func (s *Service) sweepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.sweepTimeout > 0 {
		return context.WithTimeout(ctx, s.sweepTimeout)
	}
	return context.WithCancel(ctx)
}

func parseUserID(userID string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || id == 0 {
		return 0, segdomain.ErrInvalidCustomer
	}
	return id, nil
}

func cloneDistribution(counts map[segdomain.Segment]int) map[segdomain.Segment]int {
	clone := make(map[segdomain.Segment]int, len(counts))
	for segment, count := range counts {
		clone[segment] = count
	}
	return clone
}
