package field

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/san-kum/ringfield/internal/geom"
)

// BlendMode selects how overlapping segment fields are combined.
type BlendMode int

const (
	// BlendCompound multiplies each segment's strength by its influence and
	// then again by the influence-derived weight, so influence is effectively
	// squared relative to other contributors. This matches the historical
	// behavior and is the default.
	BlendCompound BlendMode = iota

	// BlendLinear weights each segment's raw strength by influence exactly
	// once.
	BlendLinear
)

// Total influence below this is treated as no gravity at all, so blends at
// the very edge of every influence zone cannot divide by ~0.
const minTotalInfluence = 1e-3

// Defaults are coordinator-level fallbacks applied to segment configs that
// omit the corresponding field.
type Defaults struct {
	Strength        float64
	InfluenceRadius float64
	Curve           Falloff
	Blend           BlendMode
}

// SegmentConfig carries everything needed to register one fragment. The
// world-persistence layer round-trips exactly these fields.
type SegmentConfig struct {
	ArcStart   float64
	ArcEnd     float64
	RingRadius float64
	TubeRadius float64

	Center          geom.Vec3
	Axis            geom.Vec3
	Rotation        float64
	RotationSpeed   float64
	AngularVelocity geom.Vec3

	// Zero means "use the coordinator default".
	Strength        float64
	InfluenceRadius float64

	Mass         float64
	VoxelCount   int
	FractureTime time.Time
	ParentID     string
}

// SegmentWeight reports one segment's share of a blended query result.
type SegmentWeight struct {
	ID        string
	Influence float64
	Weight    float64
}

// Sample is the result of a gravity query. A point outside every fragment's
// reach yields the null sample: zero acceleration, world up, no dominant
// segment, DistanceFromSurface = +Inf.
type Sample struct {
	Acceleration        geom.Vec3
	Up                  geom.Vec3
	Influence           float64
	DistanceFromSurface float64
	Dominant            string
	Segments            []SegmentWeight
}

func nullSample() Sample {
	return Sample{
		Up:                  geom.Vec3{Y: 1},
		DistanceFromSurface: math.Inf(1),
	}
}

// Coordinator owns the registered fragments, advances their rotation each
// tick, and answers blended gravity queries. It is the sole mutator of its
// segments; one lock covers every entry point so each query sees a globally
// consistent snapshot of influences.
type Coordinator struct {
	mu       sync.Mutex
	segments map[string]*Segment
	defaults Defaults

	cull cullCache
}

func NewCoordinator(defaults Defaults) *Coordinator {
	if defaults.Strength == 0 {
		defaults.Strength = 9.8
	}
	if defaults.InfluenceRadius == 0 {
		defaults.InfluenceRadius = 100
	}
	return &Coordinator{
		segments: make(map[string]*Segment),
		defaults: defaults,
	}
}

func (c *Coordinator) Defaults() Defaults { return c.defaults }

// Register validates cfg, constructs the segment, and inserts it under id.
// Malformed configuration fails here so it can never surface as NaNs in a
// later query.
func (c *Coordinator) Register(id string, cfg SegmentConfig) (*Segment, error) {
	if id == "" {
		return nil, &ConfigError{ID: id, Wrapped: ErrEmptyID}
	}
	if cfg.Axis.LengthSq() < 1e-12 || !cfg.Axis.IsValid() {
		return nil, &ConfigError{ID: id, Wrapped: ErrZeroAxis}
	}
	if cfg.RingRadius < 0 || cfg.TubeRadius < 0 || cfg.InfluenceRadius < 0 {
		return nil, &ConfigError{ID: id, Wrapped: ErrNegativeRadius}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.segments[id]; ok {
		return nil, &ConfigError{ID: id, Wrapped: ErrDuplicateSegment}
	}

	strength := cfg.Strength
	if strength == 0 {
		strength = c.defaults.Strength
	}
	influence := cfg.InfluenceRadius
	if influence == 0 {
		influence = c.defaults.InfluenceRadius
	}

	start, end := normalizeArc(cfg.ArcStart, cfg.ArcEnd)

	seg := &Segment{
		ID:              id,
		ParentID:        cfg.ParentID,
		FractureTime:    cfg.FractureTime,
		ArcStart:        start,
		ArcEnd:          end,
		RingRadius:      cfg.RingRadius,
		TubeRadius:      cfg.TubeRadius,
		Center:          cfg.Center,
		Axis:            cfg.Axis.Normalize(),
		Rotation:        geom.WrapAngle(cfg.Rotation),
		RotationSpeed:   cfg.RotationSpeed,
		AngularVelocity: cfg.AngularVelocity,
		Strength:        strength,
		InfluenceRadius: influence,
		Mass:            cfg.Mass,
		VoxelCount:      cfg.VoxelCount,
		dirty:           true,
	}

	c.segments[id] = seg
	c.cull.invalidate()
	return seg, nil
}

// Unregister removes a segment. Removing an unknown id is a no-op.
func (c *Coordinator) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.segments[id]; !ok {
		return
	}
	delete(c.segments, id)
	c.cull.invalidate()
}

// Segment returns the registered segment for id, or nil.
func (c *Coordinator) Segment(id string) *Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.segments[id]
}

// Segments returns the registered segments sorted by id.
func (c *Coordinator) Segments() []*Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Segment, 0, len(c.segments))
	for _, s := range c.segments {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Coordinator) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.segments)
}

// Update advances every segment's rotation by dt and ages the cull cache.
func (c *Coordinator) Update(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.segments {
		s.Update(dt)
	}
	c.cull.tick()
}

// GravityAt computes the blended gravitational pull at a world-space point.
// It never fails: a point outside every fragment's reach returns the null
// sample.
func (c *Coordinator) GravityAt(point geom.Vec3) Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	nearby := c.cullSegments(point)
	if len(nearby) == 0 {
		return nullSample()
	}

	if len(nearby) == 1 {
		seg := nearby[0]
		contrib := Project(seg, point, c.defaults.Curve)
		return Sample{
			Acceleration:        contrib.Direction.Scale(-contrib.Strength),
			Up:                  contrib.Direction,
			Influence:           contrib.Influence,
			DistanceFromSurface: contrib.DistanceFromSurface,
			Dominant:            seg.ID,
			Segments:            []SegmentWeight{{ID: seg.ID, Influence: contrib.Influence, Weight: 1}},
		}
	}

	contribs := make([]Contribution, len(nearby))
	total := 0.0
	for i, seg := range nearby {
		contribs[i] = Project(seg, point, c.defaults.Curve)
		total += contribs[i].Influence
	}
	if total < minTotalInfluence {
		return nullSample()
	}

	var accel geom.Vec3
	weights := make([]SegmentWeight, len(nearby))
	dominant := 0
	for i, seg := range nearby {
		w := contribs[i].Influence / total
		strength := contribs[i].Strength
		if c.defaults.Blend == BlendLinear {
			strength = seg.Strength
		}
		accel = accel.Add(contribs[i].Direction.Scale(-strength * w))
		weights[i] = SegmentWeight{ID: seg.ID, Influence: contribs[i].Influence, Weight: w}
		if contribs[i].Influence > contribs[dominant].Influence {
			dominant = i
		}
	}

	up := accel.Scale(-1).Normalize()
	if up == (geom.Vec3{}) {
		up = geom.Vec3{Y: 1}
	}

	return Sample{
		Acceleration:        accel,
		Up:                  up,
		Influence:           total,
		DistanceFromSurface: contribs[dominant].DistanceFromSurface,
		Dominant:            nearby[dominant].ID,
		Segments:            weights,
	}
}

// cullSegments returns every segment whose influence bound reaches point,
// sorted by id so blending and dominant-segment ties are deterministic.
// Candidate sets come from the cell cache when it has one for this region.
func (c *Coordinator) cullSegments(point geom.Vec3) []*Segment {
	var out []*Segment
	if ids, ok := c.cull.lookup(point); ok {
		for _, id := range ids {
			if s, ok := c.segments[id]; ok && s.WithinInfluence(point) {
				out = append(out, s)
			}
		}
		return out
	}

	for _, s := range c.segments {
		if s.WithinInfluence(point) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	c.cull.store(point, c.segments)
	return out
}
