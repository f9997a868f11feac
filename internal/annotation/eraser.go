package annotation

import (
	"math"

	"github.com/google/uuid"

	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// EraseResult describes the outcome of one erase application: the ids of
// strokes removed from the store and the replacement strokes added in their
// place.
type EraseResult struct {
	Removed []string       `json:"removed"`
	Added   []PencilStroke `json:"added"`
}

// Touched reports whether the erase affected any stroke
func (r EraseResult) Touched() bool {
	return len(r.Removed) > 0
}

// Erase applies a single circular eraser footprint to every stroke on the
// given page. Strokes the footprint never enters are left untouched, id and
// points unchanged. Affected strokes are removed and replaced by their
// surviving sub-strokes, each inheriting the original's style and page but
// carrying a fresh id; fragments with fewer than two points are dropped.
//
// The whole operation runs under one store lock: no reader ever observes
// the original stroke gone with its replacements not yet added. The engine
// assumes its invariants are upheld by the store (positive radius, no
// degenerate strokes).
func (s *Store) Erase(footprint Eraser, pageNumber int) EraseResult {
	center := footprint.Center()

	var result EraseResult

	s.mu.Lock()
	newOrder := make([]string, 0, len(s.strokeOrder))
	for _, id := range s.strokeOrder {
		stroke := s.strokes[id]
		if stroke.PageNumber != pageNumber {
			newOrder = append(newOrder, id)
			continue
		}

		segments, touched := splitAgainstCircle(stroke.Points, center, footprint.Radius)
		if !touched {
			newOrder = append(newOrder, id)
			continue
		}

		delete(s.strokes, id)
		result.Removed = append(result.Removed, id)

		for _, points := range segments {
			replacement := &PencilStroke{
				ID:          uuid.New().String(),
				Points:      points,
				Color:       stroke.Color,
				StrokeWidth: stroke.StrokeWidth,
				Opacity:     stroke.Opacity,
				PageNumber:  stroke.PageNumber,
			}
			s.strokes[replacement.ID] = replacement
			newOrder = append(newOrder, replacement.ID)
			result.Added = append(result.Added, replacement.Clone())
		}
	}
	s.strokeOrder = newOrder
	s.mu.Unlock()

	if result.Touched() {
		s.notify()
	}
	return result
}

// ErasePath applies the eraser along a drag from one point to another,
// sampling footprints no farther apart than radius/2 so thin strokes cannot
// tunnel between samples. Each sample is one atomic Erase; the returned
// result is the net effect across the whole drag.
func (s *Store) ErasePath(from, to geom.Point, radius float64, pageNumber int) EraseResult {
	distance := from.Distance(to)

	steps := 1
	if distance > 0 {
		steps = int(math.Ceil(distance / (radius / 2)))
	}

	addedDuringPath := make(map[string]bool)
	var net EraseResult

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		footprint := Eraser{
			CenterX: from.X + t*(to.X-from.X),
			CenterY: from.Y + t*(to.Y-from.Y),
			Radius:  radius,
		}

		step := s.Erase(footprint, pageNumber)
		for _, id := range step.Removed {
			if addedDuringPath[id] {
				// A fragment created earlier in this same drag; it was
				// never visible outside the drag, drop it from both lists.
				delete(addedDuringPath, id)
				continue
			}
			net.Removed = append(net.Removed, id)
		}
		for _, stroke := range step.Added {
			addedDuringPath[stroke.ID] = true
		}
	}

	for id := range addedDuringPath {
		if stroke, ok := s.Stroke(id); ok {
			net.Added = append(net.Added, stroke)
		}
	}
	return net
}

// splitAgainstCircle walks the stroke's raw points in order, classifying
// each against the footprint, and collects the sub-sequences that survive
// outside it. Boundary-crossing points are synthesized on entry and exit so
// fragments end exactly at the eraser's edge. Returns touched == false when
// no point fell inside the circle; the caller must then leave the stroke
// alone.
func splitAgainstCircle(points []geom.Point, center geom.Point, radius float64) (segments [][]geom.Point, touched bool) {
	var open []geom.Point
	prevInside := false

	for i, p := range points {
		inside := geom.PointInCircle(p, center, radius)

		if inside {
			touched = true
			if i > 0 && !prevInside && len(open) > 0 {
				// Entering the eraser: close the running segment at the
				// boundary crossing.
				if crossing, ok := geom.CircleSegmentIntersection(center, radius, points[i-1], p); ok {
					open = append(open, crossing)
				}
				if len(open) >= 2 {
					segments = append(segments, open)
				}
				open = nil
			}
		} else {
			if i > 0 && prevInside && len(open) == 0 {
				// Leaving the eraser: seed the new segment at the boundary
				// crossing before the surviving point.
				if crossing, ok := geom.CircleSegmentIntersection(center, radius, points[i-1], p); ok {
					open = append(open, crossing)
				}
			}
			open = append(open, p)
		}

		prevInside = inside
	}

	if len(open) >= 2 {
		segments = append(segments, open)
	}
	return segments, touched
}
