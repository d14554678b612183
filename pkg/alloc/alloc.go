package alloc

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kgantsov/qlist/pkg/errors"
	"github.com/kgantsov/qlist/pkg/metrics"
)

type Kind string

const (
	KindQueue   Kind = "queue"
	KindElement Kind = "element"
	KindString  Kind = "string"
)

// Allocator hands out the success/failure signal for every block a queue
// owns. Every successful Alloc must be matched by exactly one Free with the
// same kind and size.
type Allocator interface {
	Alloc(kind Kind, size int) error
	Free(kind Kind, size int)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(kind Kind, size int) error { return nil }
func (heapAllocator) Free(kind Kind, size int)        {}

// Heap is the allocator used when none is configured. It never fails and
// keeps no books.
var Heap Allocator = heapAllocator{}

type Stats struct {
	Allocations     uint64
	Releases        uint64
	Failures        uint64
	InvalidReleases uint64
	LiveBlocks      int
	LiveBytes       int
}

// Tracker is an Allocator that accounts for every block and can be told to
// refuse a share of allocations. It is not safe for concurrent use.
type Tracker struct {
	failProbability int
	rnd             *rand.Rand
	metrics         *metrics.PrometheusMetrics

	live  map[Kind]int
	stats Stats
}

type TrackerOption func(*Tracker)

func WithSeed(seed int64) TrackerOption {
	return func(t *Tracker) {
		t.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(m *metrics.PrometheusMetrics) TrackerOption {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
		live: make(map[Kind]int),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SetFailProbability sets the percentage of allocations to refuse.
func (t *Tracker) SetFailProbability(percent int) error {
	if percent < 0 || percent > 100 {
		return errors.ErrInvalidProbability
	}

	t.failProbability = percent
	return nil
}

func (t *Tracker) FailProbability() int {
	return t.failProbability
}

func (t *Tracker) Alloc(kind Kind, size int) error {
	if t.failProbability > 0 && t.rnd.Intn(100) < t.failProbability {
		t.stats.Failures++
		if t.metrics != nil {
			t.metrics.AllocationFailuresTotal.WithLabelValues(string(kind)).Inc()
		}

		log.Debug().Str("kind", string(kind)).Int("size", size).Msg("Refusing allocation")
		return fmt.Errorf("%w: %s of %d bytes", errors.ErrAllocation, kind, size)
	}

	t.live[kind]++
	t.stats.Allocations++
	t.stats.LiveBlocks++
	t.stats.LiveBytes += size

	if t.metrics != nil {
		t.metrics.AllocationsTotal.WithLabelValues(string(kind)).Inc()
		t.metrics.LiveBlocks.Inc()
		t.metrics.LiveBytes.Add(float64(size))
	}

	return nil
}

func (t *Tracker) Free(kind Kind, size int) {
	if t.live[kind] == 0 {
		t.stats.InvalidReleases++
		if t.metrics != nil {
			t.metrics.InvalidReleasesTotal.WithLabelValues(string(kind)).Inc()
		}

		log.Error().Str("kind", string(kind)).Int("size", size).Msg("Release without a matching allocation")
		return
	}

	t.live[kind]--
	t.stats.Releases++
	t.stats.LiveBlocks--
	t.stats.LiveBytes -= size

	if t.metrics != nil {
		t.metrics.ReleasesTotal.WithLabelValues(string(kind)).Inc()
		t.metrics.LiveBlocks.Dec()
		t.metrics.LiveBytes.Sub(float64(size))
	}
}

// Live returns the number of outstanding blocks of the given kind.
func (t *Tracker) Live(kind Kind) int {
	return t.live[kind]
}

func (t *Tracker) Stats() Stats {
	return t.stats
}
