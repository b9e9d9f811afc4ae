package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"roomrent/services/logger"
)

// BookingCompleter completes confirmed bookings whose tenancy has ended
type BookingCompleter interface {
	CompleteFinished(ctx context.Context, now time.Time) (int, error)
}

// jobTimeout bounds one run of a job
const jobTimeout = 5 * time.Minute

// CompleteFinishedBookings runs one completion pass
func CompleteFinishedBookings(ctx context.Context, completer BookingCompleter, log logger.Logger, now time.Time) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	log.Info("completing finished bookings at %v", now)
	n, err := completer.CompleteFinished(ctx, now)
	if err != nil {
		log.Error("complete finished bookings: %v", err)
		return
	}
	log.Info("completed %d finished bookings", n)
}

// InitCronJobs schedules the jobs on c and starts it
func InitCronJobs(c *cron.Cron, spec string, completer BookingCompleter, log logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		CompleteFinishedBookings(context.Background(), completer, log, time.Now())
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized with schedule %q", spec)
	return nil
}
