package kurs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const defaultIngestAtHourUTC = 7

// Scheduler triggers the daily ingestion of the rate page. The page publishes
// one table per day, so one run at a fixed UTC hour is enough; the ingestion
// itself stays idempotent if the job fires more than once.
type Scheduler struct {
	ingestor *Ingestor
	// -----
	ingestAtHourUTC int
	sched           gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		result, ingErr := s.ingestor.Ingest(jobCtx, time.Now().UTC())
		if ingErr != nil {
			logrus.Errorf("Daily ingestion job failed: %v", ingErr)
			return
		}
		if result.AlreadyIngested {
			logrus.Info("Daily ingestion job: snapshots for today already exist")
			return
		}
		logrus.Infof("Daily ingestion job: %d snapshots ingested", result.Inserted)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.ingestAtHourUTC), 0, 0))),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(ingestor *Ingestor, ingestAtHourUTC int) *Scheduler {
	if ingestAtHourUTC < 0 || ingestAtHourUTC > 23 {
		ingestAtHourUTC = defaultIngestAtHourUTC
	}
	return &Scheduler{ingestor: ingestor, ingestAtHourUTC: ingestAtHourUTC}
}
