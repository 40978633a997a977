package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/selfviz/analytics-service/internal/analytics"
	"github.com/selfviz/analytics-service/internal/repository"
)

// Summary periodically logs click volume for the trailing 24 hours
type Summary struct {
	repo *repository.Repository
	log  *logrus.Logger
	cron *cron.Cron
}

// NewSummary creates the summary job runner
func NewSummary(repo *repository.Repository, log *logrus.Logger) *Summary {
	return &Summary{
		repo: repo,
		log:  log,
		cron: cron.New(),
	}
}

// Start registers the job on the given cron schedule and starts the scheduler
func (s *Summary) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *Summary) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Summary) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	since := now.Add(-24 * time.Hour)

	total, err := s.repo.CountClicksSince(ctx, since)
	if err != nil {
		s.log.Errorf("Summary job failed to count clicks: %v", err)
		return
	}

	features, err := s.repo.ClicksByFeature(ctx, analytics.Filter{Start: since, End: now})
	if err != nil {
		s.log.Errorf("Summary job failed to aggregate features: %v", err)
		return
	}

	byFeature := make(map[string]int64, len(features))
	for _, f := range features {
		byFeature[f.Feature] = f.Clicks
	}

	s.log.WithFields(logrus.Fields{
		"total_clicks": total,
		"by_feature":   byFeature,
	}).Info("Daily click summary")
}
