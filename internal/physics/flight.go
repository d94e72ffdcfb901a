package physics

import (
	"fmt"
	"math"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// Flight moves a token along a pixel polyline. Each segment gets a share of
// the total duration proportional to its length, so speed is constant.
type Flight struct {
	path     []Vec
	ends     []time.Duration // arrival offset at path[i+1]
	duration time.Duration
	elapsed  time.Duration
}

// NewFlight plans a flight over path lasting duration
func NewFlight(path []Vec, duration time.Duration) (*Flight, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTrackConfig, ErrMsgTooFewPoints)
	}
	if duration <= 0 {
		duration = DefaultFlightDuration
	}

	f := &Flight{
		path:     path,
		ends:     make([]time.Duration, len(path)-1),
		duration: duration,
	}

	total := PathLength(path)
	cum := 0.0
	for i := 1; i < len(path); i++ {
		cum += distance(path[i-1], path[i])
		if total == 0 {
			f.ends[i-1] = duration * time.Duration(i) / time.Duration(len(path)-1)
		} else {
			f.ends[i-1] = time.Duration(math.Round(cum / total * float64(duration)))
		}
	}
	f.ends[len(f.ends)-1] = duration
	return f, nil
}

// SegmentDurations returns how long each segment takes
func (f *Flight) SegmentDurations() []time.Duration {
	out := make([]time.Duration, len(f.ends))
	var prev time.Duration
	for i, end := range f.ends {
		out[i] = end - prev
		prev = end
	}
	return out
}

// Advance moves the flight forward by dt and returns the new position and
// whether the token has arrived
func (f *Flight) Advance(dt time.Duration) (Vec, bool) {
	f.elapsed += dt
	if f.elapsed > f.duration {
		f.elapsed = f.duration
	}
	return f.PositionAt(f.elapsed), f.Arrived()
}

// Arrived reports whether the whole duration has elapsed
func (f *Flight) Arrived() bool {
	return f.elapsed >= f.duration
}

// Duration returns the planned flight time
func (f *Flight) Duration() time.Duration {
	return f.duration
}

// PositionAt interpolates the position at offset t
func (f *Flight) PositionAt(t time.Duration) Vec {
	if t <= 0 {
		return f.path[0]
	}
	if t >= f.duration {
		return f.path[len(f.path)-1]
	}

	var start time.Duration
	for i, end := range f.ends {
		if t <= end {
			span := end - start
			if span <= 0 {
				return f.path[i+1]
			}
			frac := float64(t-start) / float64(span)
			a, b := f.path[i], f.path[i+1]
			return Vec{X: a.X + (b.X-a.X)*frac, Y: a.Y + (b.Y-a.Y)*frac}
		}
		start = end
	}
	return f.path[len(f.path)-1]
}

func distance(a, b Vec) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
