package services

import (
	"context"
	"encoding/json"
	"time"

	"schooladmin_go/config"
	"schooladmin_go/database"
	"schooladmin_go/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LogRetentionService flushes Redis-cached audit rows to the database and
// purges rows older than the configured retention window.
type LogRetentionService struct {
	cron *cron.Cron
}

func NewLogRetentionService() *LogRetentionService {
	return &LogRetentionService{cron: cron.New()}
}

// StartScheduler runs the flush every 10 minutes and the purge nightly.
func (s *LogRetentionService) StartScheduler() {
	if _, err := s.cron.AddFunc("*/10 * * * *", func() {
		if n, err := s.FlushCachedLogs(); err != nil {
			logrus.WithError(err).Warn("activity log flush failed")
		} else if n > 0 {
			logrus.WithField("flushed", n).Info("activity logs flushed to database")
		}
	}); err != nil {
		logrus.WithError(err).Error("failed to schedule activity log flush")
	}

	if _, err := s.cron.AddFunc("30 2 * * *", func() {
		if n, err := s.PurgeOldLogs(); err != nil {
			logrus.WithError(err).Warn("activity log purge failed")
		} else if n > 0 {
			logrus.WithField("purged", n).Info("expired activity logs purged")
		}
	}); err != nil {
		logrus.WithError(err).Error("failed to schedule activity log purge")
	}

	s.cron.Start()
}

// Stop halts the scheduler.
func (s *LogRetentionService) Stop() {
	s.cron.Stop()
}

// FlushCachedLogs drains the Redis log queue into the activity_logs table.
func (s *LogRetentionService) FlushCachedLogs() (int, error) {
	rc := database.GetRedisClient()
	if rc == nil {
		return 0, nil
	}
	ctx := context.Background()

	keys, err := rc.ZRange(ctx, "logs:queue", 0, -1).Result()
	if err != nil {
		return 0, err
	}

	flushed := 0
	for _, key := range keys {
		data, err := rc.Get(ctx, key).Result()
		if err != nil {
			// Entry expired before the flush; drop it from the queue
			rc.ZRem(ctx, "logs:queue", key)
			continue
		}

		var entry models.ActivityLog
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("undecodable cached activity log")
			rc.ZRem(ctx, "logs:queue", key)
			rc.Del(ctx, key)
			continue
		}
		entry.ID = 0

		if err := database.DB.Create(&entry).Error; err != nil {
			logrus.WithError(err).Warn("failed to persist cached activity log")
			continue
		}
		rc.ZRem(ctx, "logs:queue", key)
		rc.Del(ctx, key)
		flushed++
	}
	return flushed, nil
}

// PurgeOldLogs hard-deletes audit rows past the retention window.
func (s *LogRetentionService) PurgeOldLogs() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.LogRetentionDays)
	result := database.DB.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}
