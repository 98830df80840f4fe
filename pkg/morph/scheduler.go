// Package morph drives eased vertex interpolation between reconciled
// meshes: a round-robin shape carousel, preempting view morphs, and an
// additive radial ripple layered on top of the interpolation.
package morph

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/morphview/pkg/geometry"
)

// State identifies which morph kind, if any, is in flight.
type State int

const (
	Idle State = iota
	ShapeMorphing
	ViewMorphing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case ShapeMorphing:
		return "ShapeMorphing"
	case ViewMorphing:
		return "ViewMorphing"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Default morph pacing in ticks.
const (
	DefaultDurationTicks = 120
	DefaultIntervalTicks = 420
)

// Ripple displacement parameters. The ripple is cosmetic surface noise
// that scales each vertex along its own direction from the origin and
// fades out as a morph completes.
const (
	rippleFrequency = 5.0
	ripplePhaseRate = 3.0
	rippleAmplitude = 0.05
	ripplePhaseStep = 0.06
)

var errNoMeshes = errors.New("morph: no meshes")

// Options tunes the scheduler's pacing.
type Options struct {
	DurationTicks int // ticks per morph; 0 means DefaultDurationTicks
	IntervalTicks int // idle ticks between automatic shape morphs; 0 means DefaultIntervalTicks
}

// Scheduler owns the live morph buffer and advances at most one morph
// per tick. It is not safe for concurrent use; the tick loop and the
// trigger calls must run on one goroutine.
type Scheduler struct {
	meshes []geometry.CanonicalMesh

	current  []float32 // live interpolated positions, exposed to the renderer
	original []float32 // morph start snapshot
	target   []float32 // morph end positions

	state    State
	progress float32

	duration int
	interval int

	shapeIndex int     // carousel position
	viewIndex  int     // active view mesh, -1 while in carousel mode
	phase      float32 // ripple phase, advances every tick and is never reset
	idleTicks  int
}

// New creates a scheduler over a reconciled mesh pool. Every mesh must
// share one vertex count; a mismatch means reconciliation was skipped
// or run piecemeal and is rejected outright.
func New(meshes []geometry.CanonicalMesh, opts Options) (*Scheduler, error) {
	if len(meshes) == 0 {
		return nil, errNoMeshes
	}
	n := len(meshes[0].Positions)
	for i, m := range meshes {
		if len(m.Positions) != n {
			return nil, fmt.Errorf("morph: mesh %d has %d floats, pool requires %d (unreconciled pool)",
				i, len(m.Positions), n)
		}
	}

	if opts.DurationTicks <= 0 {
		opts.DurationTicks = DefaultDurationTicks
	}
	if opts.IntervalTicks <= 0 {
		opts.IntervalTicks = DefaultIntervalTicks
	}

	s := &Scheduler{
		meshes:    meshes,
		current:   make([]float32, n),
		original:  make([]float32, n),
		target:    make([]float32, n),
		duration:  opts.DurationTicks,
		interval:  opts.IntervalTicks,
		viewIndex: -1,
	}
	copy(s.current, meshes[0].Positions)
	copy(s.original, meshes[0].Positions)
	copy(s.target, meshes[0].Positions)
	return s, nil
}

// TriggerShapeMorph returns the scheduler to carousel mode and starts a
// morph to the next mesh in round-robin order, abandoning whatever was
// in flight.
func (s *Scheduler) TriggerShapeMorph() {
	s.viewIndex = -1
	s.idleTicks = 0
	s.shapeIndex = (s.shapeIndex + 1) % len(s.meshes)
	s.begin(ShapeMorphing, s.shapeIndex)
}

// TriggerViewMorph starts a morph to the named mesh, preempting any
// in-flight morph; its partial progress is abandoned, not resumed.
// Requesting the mode that is already active is a no-op.
func (s *Scheduler) TriggerViewMorph(meshIndex int) error {
	if meshIndex < 0 || meshIndex >= len(s.meshes) {
		return fmt.Errorf("morph: view mesh index %d out of range (%d meshes)", meshIndex, len(s.meshes))
	}
	if meshIndex == s.viewIndex {
		return nil
	}
	s.viewIndex = meshIndex
	s.begin(ViewMorphing, meshIndex)
	return nil
}

// begin snapshots current into original, installs the new target, and
// resets progress.
func (s *Scheduler) begin(state State, meshIndex int) {
	copy(s.original, s.current)
	copy(s.target, s.meshes[meshIndex].Positions)
	s.state = state
	s.progress = 0
}

// Tick advances the scheduler by one frame and reports whether the
// current buffer changed and needs re-upload.
func (s *Scheduler) Tick() bool {
	s.checkBuffers()
	s.phase += ripplePhaseStep

	if s.state == Idle {
		// The carousel only runs in the default mode with something to
		// morph between.
		if s.viewIndex < 0 && len(s.meshes) > 1 {
			s.idleTicks++
			if s.idleTicks >= s.interval {
				s.idleTicks = 0
				s.shapeIndex = (s.shapeIndex + 1) % len(s.meshes)
				s.begin(ShapeMorphing, s.shapeIndex)
			}
		}
		if s.state == Idle {
			return false
		}
	}

	s.progress += 1 / float32(s.duration)

	if s.progress >= 1 {
		// Land exactly on the target; lerp arithmetic would leave
		// float residue and the ripple is defined to be off here.
		s.progress = 1
		copy(s.current, s.target)
		s.state = Idle
		return true
	}

	e := easeInOutCubic(s.progress)
	for i := range s.current {
		s.current[i] = s.original[i] + (s.target[i]-s.original[i])*e
	}
	s.applyRipple()
	return true
}

// applyRipple displaces each vertex along its own direction from the
// origin by sin(r*5 - phase*3) * 0.05 * (1-progress). Only called while
// 0 < progress < 1, so the morph endpoints stay exact.
func (s *Scheduler) applyRipple() {
	fade := 1 - s.progress
	for i := 0; i+2 < len(s.current); i += 3 {
		x, y, z := s.current[i], s.current[i+1], s.current[i+2]
		r := float32(math.Sqrt(float64(x*x + y*y + z*z)))
		ripple := float32(math.Sin(float64(r*rippleFrequency-s.phase*ripplePhaseRate))) * rippleAmplitude * fade
		s.current[i] += x * ripple
		s.current[i+1] += y * ripple
		s.current[i+2] += z * ripple
	}
}

// checkBuffers panics on a current/original/target length mismatch.
// That can only happen through memory corruption or a caller mutating
// the exposed buffer's length, and is not a recoverable condition.
func (s *Scheduler) checkBuffers() {
	if len(s.current) != len(s.original) || len(s.current) != len(s.target) {
		panic(fmt.Sprintf("morph: buffer length mismatch: current=%d original=%d target=%d",
			len(s.current), len(s.original), len(s.target)))
	}
}

// easeInOutCubic is a symmetric cubic ease: slow in, slow out.
func easeInOutCubic(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	d := -2*p + 2
	return 1 - d*d/2
}

// Current returns the live position buffer. It is valid until the next
// Tick and must not be mutated by the caller.
func (s *Scheduler) Current() []float32 {
	return s.current
}

// State returns the active morph state.
func (s *Scheduler) State() State {
	return s.state
}

// Progress returns the active morph's progress in [0,1].
func (s *Scheduler) Progress() float32 {
	return s.progress
}

// ActiveShapeIndex returns the carousel position, or the view mesh
// index while a view mode is active.
func (s *Scheduler) ActiveShapeIndex() int {
	if s.viewIndex >= 0 {
		return s.viewIndex
	}
	return s.shapeIndex
}

// MeshCount returns the size of the morph-target pool.
func (s *Scheduler) MeshCount() int {
	return len(s.meshes)
}

// TrueVertexCount returns the pre-padding vertex count of mesh i, the
// number the UI should report.
func (s *Scheduler) TrueVertexCount(i int) int {
	return s.meshes[i].OriginalVertexCount
}
