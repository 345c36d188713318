package field

import (
	"math"
	"sort"

	"github.com/san-kum/ringfield/internal/geom"
)

const (
	// Edge length of one cache cell. Queries inside the same cell share a
	// candidate set.
	cullCellSize = 64.0

	// Ticks a cached candidate set survives before it is discarded.
	cullCacheTTL = 8
)

type cellKey struct {
	x, y, z int
}

// cullCache memoizes candidate segment ids per spatial cell. Candidate sets
// are computed against the cell center with the influence bound inflated by
// the cell's half-diagonal, so they are a superset of the exact cull for any
// point in the cell; callers re-check WithinInfluence on each candidate.
// Entries expire on a tick countdown and the whole cache drops whenever the
// segment set changes.
type cullCache struct {
	cells map[cellKey][]string
	ttl   int
}

func keyFor(p geom.Vec3) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / cullCellSize)),
		y: int(math.Floor(p.Y / cullCellSize)),
		z: int(math.Floor(p.Z / cullCellSize)),
	}
}

func (k cellKey) center() geom.Vec3 {
	return geom.Vec3{
		X: (float64(k.x) + 0.5) * cullCellSize,
		Y: (float64(k.y) + 0.5) * cullCellSize,
		Z: (float64(k.z) + 0.5) * cullCellSize,
	}
}

func (c *cullCache) lookup(p geom.Vec3) ([]string, bool) {
	if c.cells == nil {
		return nil, false
	}
	ids, ok := c.cells[keyFor(p)]
	return ids, ok
}

func (c *cullCache) store(p geom.Vec3, segments map[string]*Segment) {
	if c.cells == nil {
		c.cells = make(map[cellKey][]string)
		c.ttl = cullCacheTTL
	}
	key := keyFor(p)
	center := key.center()
	slack := cullCellSize * math.Sqrt(3) / 2

	ids := make([]string, 0, len(segments))
	for id, s := range segments {
		reach := s.RingRadius + s.TubeRadius + s.InfluenceRadius + slack
		if center.Sub(s.Center).LengthSq() < reach*reach {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	c.cells[key] = ids
}

func (c *cullCache) tick() {
	if c.cells == nil {
		return
	}
	c.ttl--
	if c.ttl <= 0 {
		c.invalidate()
	}
}

func (c *cullCache) invalidate() {
	c.cells = nil
	c.ttl = 0
}
