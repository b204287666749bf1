package jobs

import (
	"context"
	"time"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/specs"
)

// Monitor polls a job until it reaches a terminal state, using the
// documented cadence: start at Interval, multiply by Factor per poll,
// cap at MaxInterval, reset whenever the state or percentage changes,
// and abandon after MaxTransportErrors consecutive transport failures.
// The underlying primitives stay public; Monitor is a convenience.
type Monitor struct {
	client *Client

	Interval           time.Duration
	Factor             float64
	MaxInterval        time.Duration
	MaxTransportErrors int

	// OnProgress, when set, receives every successful progress report.
	OnProgress func(Progress)

	// sleep is replaced in tests.
	sleep func(context.Context, time.Duration) error
}

// NewMonitor builds a monitor with the documented polling contract.
func (c *Client) NewMonitor() *Monitor {
	return &Monitor{
		client:             c,
		Interval:           2 * time.Second,
		Factor:             1.2,
		MaxInterval:        15 * time.Second,
		MaxTransportErrors: 10,
		sleep:              sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Wait blocks until the job terminates, then returns the final job
// record. Cancellation of ctx stops the wait.
func (m *Monitor) Wait(ctx context.Context, id string, service specs.Service) apierr.Response[Job] {
	delay := m.Interval
	transportErrs := 0
	var last Progress

	for {
		if err := m.sleep(ctx, delay); err != nil {
			return apierr.FailureOf[Job](0, err, apierr.CodeTransport)
		}

		p := m.client.GetProgress(ctx, id, service)
		if !p.Ok() {
			transportErrs++
			if transportErrs >= m.MaxTransportErrors {
				return apierr.Failure[Job](p.StatusCode,
					p.Err.WithContext("consecutiveErrors", transportErrs))
			}
			continue
		}
		transportErrs = 0

		if m.OnProgress != nil {
			m.OnProgress(p.Value)
		}

		if p.Value.State.Terminal() {
			return m.client.Get(ctx, id, service)
		}

		if p.Value.State != last.State || p.Value.Percentage != last.Percentage {
			delay = m.Interval
		} else {
			delay = time.Duration(float64(delay) * m.Factor)
			if delay > m.MaxInterval {
				delay = m.MaxInterval
			}
		}
		last = p.Value
	}
}
