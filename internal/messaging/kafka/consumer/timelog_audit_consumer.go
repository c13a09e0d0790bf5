package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-wfm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CorrectionStatsRepository persists the daily correction counters that the
// analytics endpoints read.
type CorrectionStatsRepository interface {
	IncrementDailyStat(ctx context.Context, statDate time.Time, action string) error
}

type correctionStatsRepository struct {
	db *gorm.DB
}

func NewCorrectionStatsRepository(db *gorm.DB) CorrectionStatsRepository {
	return &correctionStatsRepository{db: db}
}

func (r *correctionStatsRepository) IncrementDailyStat(ctx context.Context, statDate time.Time, action string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO correction_daily_stats (stat_date, action, count)
		VALUES (?, ?, 1)
		ON CONFLICT (stat_date, action)
		DO UPDATE SET count = correction_daily_stats.count + 1
	`, statDate.UTC().Truncate(24*time.Hour), action).Error
}

// ConsumeTimeLogAudit projects correction audit events into per-day counters.
// The projection is additive, so redelivered messages at worst overcount by
// one; the dashboards treat these numbers as indicative, not billing-grade.
func ConsumeTimeLogAudit(
	ctx context.Context,
	reader *kafkago.Reader,
	stats CorrectionStatsRepository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.timelog_audit")
	log.Info("time log audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("time log audit consumer stopped")
				return
			}
			log.Error("fetch time log audit message failed", zap.Error(err))
			continue
		}

		var event events.TimeLogCorrectedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode time log corrected event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := stats.IncrementDailyStat(ctx, event.OccurredAt, event.Action); err != nil {
			log.Error("increment correction stat failed",
				zap.String("time_log_id", event.TimeLogID),
				zap.String("action", event.Action),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit time log audit message failed", zap.Error(err))
			continue
		}

		log.Debug("correction stat updated",
			zap.String("time_log_id", event.TimeLogID),
			zap.String("action", event.Action),
		)
	}
}
