// Package panel implements the slide-panel state machine: one main pane and
// two side panes share a container, and exactly one pane is visible at a
// time. The controller tracks which pane is open, computes the horizontal
// displacement of the main pane for each transition, and keeps the draw
// order of the two side panes consistent.
//
// Rendering, gesture recognition, and animation execution are external
// collaborators expressed as the Layout, GestureSource, and Executor
// interfaces. The anim package provides the stock implementations for
// Bubble Tea programs.
package panel

import "time"

// State identifies which pane is currently visible.
type State int

const (
	StateMain State = iota
	StateLeftOpen
	StateRightOpen
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "Main"
	case StateLeftOpen:
		return "LeftOpen"
	case StateRightOpen:
		return "RightOpen"
	default:
		return "Unknown"
	}
}

// Side identifies one of the two side panes.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "Left"
	}
	return "Right"
}

// state returns the open state corresponding to the side.
func (s Side) state() State {
	if s == SideLeft {
		return StateLeftOpen
	}
	return StateRightOpen
}

// Direction is the screen-relative direction of a swipe gesture (the
// direction the finger moves, not the pane it reveals).
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	if d == DirLeft {
		return "Left"
	}
	return "Right"
}

// Host is an opaque reference to a content region. The controller never
// inspects a host; it only hands it back to the Layout.
type Host interface{}

// Layout is the rendering host the controller drives. Offsets and widths
// are in layout units (terminal columns for the TUI stage).
type Layout interface {
	// InsertBelow places h immediately below `below` in draw order.
	InsertBelow(h, below Host)
	// RemoveFromParent detaches h from the draw order.
	RemoveFromParent(h Host)
	// SetOffset sets the horizontal offset of h.
	SetOffset(h Host, offset float64)
	// Width returns the current width of h.
	Width(h Host) float64
}

// Easing selects the timing curve of a transition.
type Easing int

const (
	EaseInOut Easing = iota
	EaseLinear
)

// Curve describes the timing characteristics of a requested transition.
// A zero Duration means the transition is applied immediately.
type Curve struct {
	Duration        time.Duration
	Easing          Easing
	SpringDamping   float64 // damping ratio in (0,1]; 0 disables the spring
	InitialVelocity float64
}

// Executor runs transitions asynchronously. Animate returns immediately;
// mutate assigns the final values through the Layout, and onComplete fires
// exactly once on the UI event loop when the transition settles (finished)
// or is replaced by a newer one (not finished). Zero-duration transitions
// complete synchronously.
type Executor interface {
	Animate(c Curve, mutate func(), onComplete func(finished bool))
}

// GestureSource delivers discrete directional swipe events for a host to a
// handler. The controller registers itself for both directions on the main
// host; side hosts receive gestures only via AddSwipeGestureInSide.
type GestureSource interface {
	AddSwipe(h Host, d Direction, fn func(Direction))
}

// slideCurve is the stock side-panel transition: half a second,
// ease-in-out, damped spring, no initial velocity.
var slideCurve = Curve{
	Duration:      500 * time.Millisecond,
	Easing:        EaseInOut,
	SpringDamping: 0.8,
}

// DefaultOffset is how far the main pane stops short of fully leaving the
// container when a side pane opens, in layout units.
const DefaultOffset = 150.0
