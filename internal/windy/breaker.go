// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/worldcams/internal/logging"
	"github.com/tomtom215/worldcams/internal/metrics"
)

// BreakerSettings tunes the upstream circuit breaker.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32        // probes allowed while half-open
	Interval    time.Duration // closed-state count reset period
	Timeout     time.Duration // open duration before half-open
	MinRequests uint32        // requests needed before the ratio is considered
	FailureRate float64       // ratio at which the breaker opens
}

// DefaultBreakerSettings opens after 60% failures over at least 10 requests
// and probes again after 2 minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:        "windy-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		MinRequests: 10,
		FailureRate: 0.6,
	}
}

func newBreaker(s BreakerSettings) *gobreaker.CircuitBreaker[*Response] {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	return gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRate
			if shouldTrip {
				logging.Warn().Str("breaker", s.Name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := from.String(), to.String()
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerStateValue(toStr))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// execute runs fn through the breaker and records the outcome. Rejections
// are reported as ErrCircuitOpen.
func (c *Client) execute(operation string, fn func() (*Response, error)) (*Response, error) {
	resp, err := c.breaker.Execute(fn)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.breaker.Name(), "rejected").Inc()
		metrics.RecordUpstreamRejected(operation)
		return nil, ErrCircuitOpen
	case countsAsFailure(err):
		metrics.CircuitBreakerRequests.WithLabelValues(c.breaker.Name(), "failure").Inc()
		counts := c.breaker.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.breaker.Name()).Set(float64(counts.ConsecutiveFailures))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.breaker.Name(), "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.breaker.Name()).Set(0)
	}
	return resp, err
}

// BreakerState returns the current breaker state name.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}
