package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

// Probe periodically pings the weather provider and remembers the outcome so
// the health endpoint can report upstream reachability without spending a
// provider call per health check.
type Probe struct {
	scheduler *gocron.Scheduler
	pinger    weather.Pinger
	interval  time.Duration

	status atomic.Value // Status
}

// Status is the last probe outcome.
type Status struct {
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checkedAt"`
	Detail    string    `json:"detail,omitempty"`
}

// New creates a Probe. interval <= 0 disables probing; Status then reports
// reachable=true with no timestamp.
func New(pinger weather.Pinger, interval time.Duration) *Probe {
	p := &Probe{
		scheduler: gocron.NewScheduler(time.UTC),
		pinger:    pinger,
		interval:  interval,
	}
	p.status.Store(Status{Reachable: true})
	return p
}

// Start schedules the periodic probe and runs it once immediately.
func (p *Probe) Start() error {
	if p.pinger == nil || p.interval <= 0 {
		log.Println("probe: disabled")
		return nil
	}

	_, err := p.scheduler.Every(p.interval).StartImmediately().Do(p.run)
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

func (p *Probe) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status := Status{Reachable: true, CheckedAt: time.Now().UTC()}
	if err := p.pinger.Ping(ctx); err != nil {
		log.Printf("probe: provider unreachable: %v", err)
		status.Reachable = false
		status.Detail = "provider unreachable"
	}
	p.status.Store(status)
}

// Status returns the most recent probe outcome.
func (p *Probe) Status() Status {
	return p.status.Load().(Status)
}

// Stop stops the scheduler and cancels any future probes.
func (p *Probe) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
