// Package monitor sweeps the customer fleet for high churn risk and emits
// marketing events for the campaign layer.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gogsia86/farmers-market-sub007/internal/events"
	segdomain "github.com/gogsia86/farmers-market-sub007/internal/segmentation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Seg    segdomain.Service
	Outbox *events.Outbox
	Config Config `optional:"true"`
}

type Worker struct {
	log    *zap.Logger
	seg    segdomain.Service
	outbox *events.Outbox
	cfg    Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:    p.Log.Named("segmentation.monitor"),
		seg:    p.Seg,
		outbox: p.Outbox,
		cfg:    p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("churn risk sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce sweeps once and publishes one churn_risk.high event per user at or
// above the threshold. The dedupe key buckets by day so a user at sustained
// risk is alerted at most once per day.
func (w *Worker) RunOnce(ctx context.Context) error {
	if w.seg == nil || w.outbox == nil {
		return errors.New("monitor_unavailable")
	}

	predictions, err := w.seg.GetHighRiskUsers(ctx, w.cfg.Threshold)
	if err != nil {
		return err
	}

	day := time.Now().UTC().Format("2006-01-02")
	for _, p := range predictions {
		userID, err := snowflake.ParseString(p.UserID)
		if err != nil {
			continue
		}
		payload := events.ChurnRiskPayload{
			UserID:           p.UserID,
			ChurnProbability: p.ChurnProbability,
			RiskLevel:        string(p.RiskLevel),
		}
		err = w.outbox.Publish(ctx, events.Event{
			UserID:    userID,
			Type:      events.EventChurnRiskHigh,
			Payload:   payload.ToMap(),
			DedupeKey: fmt.Sprintf("%s:%s", events.EventChurnRiskHigh, day),
		})
		if err != nil {
			return err
		}
	}

	w.log.Info("churn risk sweep complete", zap.Int("at_risk", len(predictions)))
	return nil
}
