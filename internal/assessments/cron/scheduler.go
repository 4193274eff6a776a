package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/recruitbase/assessment-api/internal/assessments/service"
)

// Scheduler runs the nightly closer: open assessments whose closing date
// has passed are moved to Closed.
type Scheduler struct {
	svc *service.AssessmentService
	log *zap.Logger
	c   *cron.Cron
}

func NewScheduler(svc *service.AssessmentService, log *zap.Logger) *Scheduler {
	return &Scheduler{svc: svc, log: log}
}

// Start initializes cron tasks (nightly at 12:00AM).
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc("0 0 0 * * *", s.closeExpired)
	if err != nil {
		s.log.Error("failed to create cron job", zap.Error(err))
		return
	}

	s.log.Info("cron scheduler started (closing expired assessments nightly)")
	s.c.Start()
}

// Stop halts the scheduler; a running job finishes first.
func (s *Scheduler) Stop() {
	if s.c != nil {
		<-s.c.Stop().Done()
	}
}

func (s *Scheduler) closeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.svc.CloseExpired(ctx)
	if err != nil {
		s.log.Error("closing expired assessments failed", zap.Error(err))
		return
	}
	s.log.Info("closed expired assessments", zap.Int64("count", n))
}
