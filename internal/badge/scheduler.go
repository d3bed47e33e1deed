package badge

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/julienpequegnot/qaboard/internal/logging"
)

// Scheduler runs the badge sweep on a cron spec such as "@every 1h" or "0 3 * * *".
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, awarder *Awarder) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := awarder.AwardAll(); err != nil {
			logging.Error().Err(err).Msg("badge sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid badge schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
