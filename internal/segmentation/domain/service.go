package domain

import (
	"context"
	"errors"
	"time"
)

// Service is the read-side segmentation facade. Operations returning a
// pointer yield (nil, nil) when the user has no completed orders; callers
// treat that as insufficient data, not a failure.
type Service interface {
	GetSegment(ctx context.Context, userID string) (*RFMScore, error)
	GetBehavioralProfile(ctx context.Context, userID string) (*BehavioralProfile, error)
	PredictChurn(ctx context.Context, userID string) (*ChurnPrediction, error)

	UsersInSegment(ctx context.Context, segment Segment) ([]string, error)
	GetSegmentDistribution(ctx context.Context) (map[Segment]int, error)
	// GetHighRiskUsers returns predictions at or above the threshold, sorted
	// descending by probability. A non-positive threshold selects the
	// default of 0.7.
	GetHighRiskUsers(ctx context.Context, threshold float64) ([]ChurnPrediction, error)
	PerformCohortAnalysis(ctx context.Context, start, end time.Time) ([]CohortRecord, error)

	SegmentDefinition(segment Segment) (SegmentDefinition, bool)
}

// DefaultHighRiskThreshold is applied when callers pass a non-positive
// threshold.
const DefaultHighRiskThreshold = 0.7

var (
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidSegment   = errors.New("invalid_segment")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrInvalidThreshold = errors.New("invalid_threshold")
)
