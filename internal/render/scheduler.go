// Package render schedules asynchronous page rasterization and guards the
// results with per-target generation tokens. There is no true cancellation
// of in-flight rasterization work; a superseded result is simply discarded
// instead of presented, which is cheap and sufficient.
package render

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"
)

// Target identifies a logical render surface: the main canvas or one
// thumbnail per page.
type Target string

// MainCanvas is the primary editing surface
const MainCanvas Target = "main-canvas"

// Thumbnail returns the render target for a page's sidebar thumbnail
func Thumbnail(pageNumber int) Target {
	return Target(fmt.Sprintf("thumbnail-%d", pageNumber))
}

// IsThumbnail reports whether the target is a thumbnail surface
func (t Target) IsThumbnail() bool {
	return strings.HasPrefix(string(t), "thumbnail-")
}

// Rasterizer is the page-rasterization collaborator. It turns a 1-based
// page number and a scale factor into a pixel buffer.
type Rasterizer interface {
	RasterizePage(ctx context.Context, pageNumber int, scale float64) (image.Image, error)
}

// Presenter receives a finished, still-fresh rasterization result
type Presenter func(target Target, img image.Image)

// DefaultRequeueDelay is how long a main-canvas request waits when another
// render for the same target is already in flight.
const DefaultRequeueDelay = 50 * time.Millisecond

// Scheduler runs rasterization requests asynchronously and discards stale
// results. Each request captures a monotonically increasing generation
// number for its target; if the target's counter has moved on by the time
// the rasterizer returns, the result is dropped silently.
type Scheduler struct {
	rasterizer   Rasterizer
	present      Presenter
	requeueDelay time.Duration

	mu          sync.Mutex
	generations map[Target]uint64
	// active counts renders per target that are running or waiting out the
	// requeue delay, so a request arriving during the delay window queues
	// like any other instead of starting at once.
	active  map[Target]int
	stale   int
	dropped int

	wg sync.WaitGroup
}

// NewScheduler creates a scheduler delivering fresh results to present
func NewScheduler(rasterizer Rasterizer, present Presenter) *Scheduler {
	return &Scheduler{
		rasterizer:   rasterizer,
		present:      present,
		requeueDelay: DefaultRequeueDelay,
		generations:  make(map[Target]uint64),
		active:       make(map[Target]int),
	}
}

// SetRequeueDelay overrides the main-canvas requeue delay
func (s *Scheduler) SetRequeueDelay(d time.Duration) {
	s.requeueDelay = d
}

// Invalidate bumps the target's generation so any in-flight result for it
// is discarded on completion. Called after every store mutation that
// affects what the target shows.
func (s *Scheduler) Invalidate(target Target) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[target]++
	return s.generations[target]
}

// Generation returns the target's current generation token
func (s *Scheduler) Generation(target Target) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[target]
}

// Request schedules an asynchronous rasterization of the given page onto
// the target. Returns false when the request was dropped: a thumbnail
// refresh is dropped if one is already in flight for that exact target,
// since the in-flight one delivers the same content or is invalidated
// anyway. A main-canvas request during flight is queued behind a short
// fixed delay instead of blocking.
func (s *Scheduler) Request(ctx context.Context, target Target, pageNumber int, scale float64) bool {
	s.mu.Lock()

	if s.active[target] > 0 {
		if target.IsThumbnail() {
			s.dropped++
			s.mu.Unlock()
			return false
		}

		s.generations[target]++
		generation := s.generations[target]
		s.active[target]++
		s.mu.Unlock()

		s.wg.Add(1)
		time.AfterFunc(s.requeueDelay, func() {
			defer s.wg.Done()
			s.run(ctx, target, pageNumber, scale, generation)
		})
		return true
	}

	s.generations[target]++
	generation := s.generations[target]
	s.active[target]++
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, target, pageNumber, scale, generation)
	}()
	return true
}

// run executes one rasterization and presents the result unless its
// generation token has been superseded.
func (s *Scheduler) run(ctx context.Context, target Target, pageNumber int, scale float64, generation uint64) {
	img, err := s.rasterizer.RasterizePage(ctx, pageNumber, scale)

	s.mu.Lock()
	s.active[target]--
	current := s.generations[target]
	if current != generation {
		s.stale++
		s.mu.Unlock()
		// Stale results are discarded, never surfaced as errors.
		return
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("rasterization of page %d for %s failed: %v", pageNumber, target, err)
		return
	}
	s.present(target, img)
}

// Wait blocks until every scheduled rasterization has completed or been
// discarded. Intended for shutdown and tests.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Stats returns how many results were discarded as stale and how many
// thumbnail requests were dropped while one was in flight.
func (s *Scheduler) Stats() (stale, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale, s.dropped
}
