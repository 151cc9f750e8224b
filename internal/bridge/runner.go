// Package bridge runs the decode loop: bytes from a source go through the
// touch decoder and the resulting pointer actions go to a sink.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/banshee-data/touchbridge/internal/metrics"
	"github.com/banshee-data/touchbridge/internal/monitoring"
	"github.com/banshee-data/touchbridge/internal/pointer"
	"github.com/banshee-data/touchbridge/internal/tail"
	"github.com/banshee-data/touchbridge/internal/timeutil"
	"github.com/banshee-data/touchbridge/internal/touch"
)

// ByteSource yields at most one byte per poll. ok=false with a nil error
// means nothing arrived this poll. io.EOF ends the loop cleanly.
type ByteSource interface {
	PollByte() (b byte, ok bool, err error)
}

// Runner owns the decoder and drives it from a ByteSource. It is not safe
// for concurrent use; Run must be called from a single goroutine.
type Runner struct {
	Source   ByteSource
	Sink     pointer.Sink
	Geometry pointer.Geometry

	// Optional collaborators. Nil values fall back to NoWait, tail.Discard,
	// an unmetered loop and the real clock.
	Wait    WaitFunc
	Events  tail.Publisher
	Metrics *metrics.BridgeMetrics
	Clock   timeutil.Clock

	decoder  *touch.Decoder
	logLimit *rate.Limiter

	// Last pointer position sent to the sink; releases are reported there.
	lastX, lastY int
}

// Sink failure logs are limited to a burst of five, then one per second.
const (
	sinkErrorLogEvery = time.Second
	sinkErrorLogBurst = 5
)

// NewRunner returns a runner with a fresh decoder.
func NewRunner(src ByteSource, sink pointer.Sink, geom pointer.Geometry) *Runner {
	return &Runner{
		Source:   src,
		Sink:     sink,
		Geometry: geom,
		decoder:  touch.NewDecoder(),
		logLimit: rate.NewLimiter(rate.Every(sinkErrorLogEvery), sinkErrorLogBurst),
	}
}

// Run polls the source until ctx is done, the source reports io.EOF, or a
// read fails. Context cancellation returns ctx.Err(); EOF returns nil.
func (r *Runner) Run(ctx context.Context) error {
	if r.decoder == nil {
		r.decoder = touch.NewDecoder()
	}
	wait := r.Wait
	if wait == nil {
		wait = NoWait
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, ok, err := r.Source.PollByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				// The source was closed to unblock us during shutdown.
				return ctx.Err()
			}
			return fmt.Errorf("read byte source: %w", err)
		}
		if !ok {
			if err := wait(ctx); err != nil {
				return err
			}
			continue
		}

		r.Step(b)
	}
}

// Step feeds one byte through the decoder and, when it completes a valid
// frame, dispatches the resulting pointer actions.
func (r *Runner) Step(b byte) (touch.Sample, bool) {
	if r.decoder == nil {
		r.decoder = touch.NewDecoder()
	}
	r.Metrics.ObserveByte()

	s, ok := r.decoder.Feed(b)
	if !ok {
		if monitoring.Verbose() {
			if w := r.decoder.Window(); touch.HasMagic(w) {
				monitoring.Tracef("sync: header without valid checksum (got 0x%02X want 0x%02X)",
					w[touch.FrameSize-1], touch.Checksum(w.Payload()))
			}
		}
		return s, false
	}

	r.Metrics.ObserveFrame()
	r.dispatch(s)
	return s, true
}

// Button reports the decoder's button state.
func (r *Runner) Button() touch.ButtonState {
	if r.decoder == nil {
		return touch.ButtonState{}
	}
	return r.decoder.Button()
}

// dispatch sends the move (only while active) before any press so the click
// lands where the finger is.
func (r *Runner) dispatch(s touch.Sample) {
	var trace strings.Builder
	verbose := monitoring.Verbose()
	if verbose {
		trace.WriteString(s.Axes.String())
	}

	if s.Estimate.Active {
		r.lastX, r.lastY = r.Geometry.Scale(s.Estimate.X, s.Estimate.Y)
		if verbose {
			fmt.Fprintf(&trace, " (%f, %f)", s.Estimate.X, s.Estimate.Y)
		}
		if err := r.Sink.MoveTo(r.lastX, r.lastY); err != nil {
			r.sinkFailed("move", err)
		} else {
			r.Metrics.ObserveMove()
		}
		r.publish("move", r.lastX, r.lastY)
	}

	switch s.Transition {
	case touch.Press:
		if verbose {
			trace.WriteString(" LEFT CLICK")
		}
		if err := r.Sink.Press(); err != nil {
			r.sinkFailed("press", err)
		}
		r.Metrics.ObserveTransition(s.Transition.String(), true)
		r.publish("press", r.lastX, r.lastY)
	case touch.Release:
		if verbose {
			trace.WriteString(" LEFT RELEASE")
		}
		if err := r.Sink.Release(); err != nil {
			r.sinkFailed("release", err)
		}
		r.Metrics.ObserveTransition(s.Transition.String(), false)
		r.publish("release", r.lastX, r.lastY)
	}

	if verbose {
		monitoring.Tracef("%s", trace.String())
	}
}

// sinkFailed counts every failure but rate-limits the log line.
func (r *Runner) sinkFailed(op string, err error) {
	r.Metrics.ObserveSinkError(op)
	if r.logLimit == nil {
		r.logLimit = rate.NewLimiter(rate.Every(sinkErrorLogEvery), sinkErrorLogBurst)
	}
	if r.logLimit.Allow() {
		monitoring.Logf("pointer %s failed: %v", op, err)
	}
}

func (r *Runner) publish(kind string, x, y int) {
	if r.Events == nil {
		return
	}
	clock := r.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	r.Events.Publish(tail.Event{
		Time: clock.Now(),
		Kind: kind,
		X:    x,
		Y:    y,
		Held: r.decoder.Button().Held,
	})
}
