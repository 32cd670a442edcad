package panel

import (
	"fmt"
	"strings"
)

// Controller is the slide-panel state machine. It owns the current State,
// the configured reveal offsets, and the draw order of the two side hosts.
// It does not own the hosts' lifecycle or content.
//
// The controller is single-writer: every method must be called from the UI
// event loop (a Bubble Tea Update function), which is also where the
// Executor delivers completion callbacks. There is no internal locking.
type Controller struct {
	layout   Layout
	exec     Executor
	gestures GestureSource

	main, left, right Host

	leftOffset  float64
	rightOffset float64
	curve       Curve

	state State
	front Side // which side host is currently drawn on top

	// closing is true while a collapse animation's completion is pending.
	// New navigation requests are rejected in that window; see Collapse.
	closing bool

	// seq is bumped on every navigation request. Completion callbacks
	// capture it and commit state only if no newer request has been
	// issued since, so a preempted close can never commit Main late.
	seq uint64
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithOffsets overrides the default reveal offsets. Offsets are the width
// of the main pane left on screen when the corresponding side pane opens.
func WithOffsets(left, right float64) Option {
	return func(c *Controller) {
		c.leftOffset = left
		c.rightOffset = right
	}
}

// WithCurve overrides the stock slide timing for open and close
// transitions. JumpToMain stays zero-duration.
func WithCurve(curve Curve) Option {
	return func(c *Controller) {
		c.curve = curve
	}
}

// WithGestures attaches a gesture source. The controller registers itself
// for left and right swipes on the main host.
func WithGestures(src GestureSource) Option {
	return func(c *Controller) {
		c.gestures = src
	}
}

// New constructs a Controller over three content hosts. The initial draw
// order is main at the bottom, right above it, left above right; the
// initial state is Main.
//
// Nil collaborators or hosts and negative offsets are programming errors
// and panic; there is no recoverable failure mode here.
func New(layout Layout, exec Executor, main, left, right Host, opts ...Option) *Controller {
	if layout == nil {
		panic("panel: nil layout")
	}
	if exec == nil {
		panic("panel: nil executor")
	}
	if main == nil || left == nil || right == nil {
		panic("panel: nil host")
	}
	c := &Controller{
		layout:      layout,
		exec:        exec,
		main:        main,
		left:        left,
		right:       right,
		leftOffset:  DefaultOffset,
		rightOffset: DefaultOffset,
		curve:       slideCurve,
		state:       StateMain,
		front:       SideLeft,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.leftOffset < 0 || c.rightOffset < 0 {
		panic(fmt.Sprintf("panel: negative offset (%v, %v)", c.leftOffset, c.rightOffset))
	}

	// Normalize the stack bottom-to-top as main, right, left using only
	// the two layout primitives: anchor on left, tuck right under it,
	// then main under right.
	c.layout.RemoveFromParent(c.right)
	c.layout.InsertBelow(c.right, c.left)
	c.layout.RemoveFromParent(c.main)
	c.layout.InsertBelow(c.main, c.right)

	if c.gestures != nil {
		c.gestures.AddSwipe(c.main, DirLeft, c.swipe)
		c.gestures.AddSwipe(c.main, DirRight, c.swipe)
	}
	return c
}

// State returns the current authoritative state. Opening transitions
// commit at request time, so this may read LeftOpen or RightOpen while the
// slide is still visually in progress; closing transitions commit Main
// only once the animation completes.
func (c *Controller) State() State { return c.state }

// Front returns which side host is currently drawn on top of the other.
func (c *Controller) Front() Side { return c.front }

// Transitioning reports whether a closing animation's completion is still
// pending. Navigation requests other than JumpToMain are rejected while it
// is true.
func (c *Controller) Transitioning() bool { return c.closing }

// HandleSwipe routes a swipe gesture through the dispatch table. From Main
// the mapping is crossed on purpose: content follows the finger, so a left
// swipe drags the main pane left and reveals the pane anchored on the
// right edge, and vice versa. Returns whether a transition was started.
func (c *Controller) HandleSwipe(d Direction) bool {
	switch c.state {
	case StateMain:
		if d == DirLeft {
			return c.Open(SideRight)
		}
		return c.Open(SideLeft)
	case StateLeftOpen:
		if d == DirLeft {
			return c.Close(SideLeft)
		}
		return c.Collapse()
	case StateRightOpen:
		if d == DirRight {
			return c.Close(SideRight)
		}
		return c.Collapse()
	}
	return false
}

// Toggle is a string-keyed compatibility shim over HandleSwipe: "left" and
// "right" (case-insensitive) name the swipe direction. Prefer HandleSwipe;
// unknown directions return false.
func (c *Controller) Toggle(direction string) bool {
	switch strings.ToLower(direction) {
	case "left":
		return c.HandleSwipe(DirLeft)
	case "right":
		return c.HandleSwipe(DirRight)
	}
	return false
}

// Open reveals the given side pane: the state commits immediately, the
// target side host is raised above the other, and the main host is asked
// to slide to its displacement. Returns false if a closing animation is
// still settling (the request is rejected, not queued).
func (c *Controller) Open(side Side) bool {
	if c.closing {
		return false
	}
	c.seq++
	c.raise(side)
	c.state = side.state()
	target := OpenDisplacement(side, c.layout.Width(c.main), c.leftOffset, c.rightOffset)
	c.exec.Animate(c.curve, func() {
		c.layout.SetOffset(c.main, target)
	}, nil)
	return true
}

// Close collapses the given side pane if it is the one open. The state
// stays side-open until the animation's completion signal arrives; only a
// finished transition commits Main. Returns whether a transition started.
func (c *Controller) Close(side Side) bool {
	if c.state != side.state() {
		return false
	}
	return c.Collapse()
}

// Collapse closes whichever side pane is open. A no-op from Main (no
// animation request, no state change) and while a previous collapse is
// still settling.
func (c *Controller) Collapse() bool {
	if c.state == StateMain || c.closing {
		return false
	}
	c.seq++
	seq := c.seq
	c.closing = true
	c.exec.Animate(c.curve, func() {
		c.layout.SetOffset(c.main, 0)
	}, func(finished bool) {
		if c.seq != seq {
			return // preempted by JumpToMain; stale commit dropped
		}
		c.closing = false
		if finished {
			c.state = StateMain
		}
	})
	return true
}

// CollapseAll is the public alias for Collapse.
func (c *Controller) CollapseAll() bool { return c.Collapse() }

// JumpToMain forces the main host back to offset zero with a zero-duration
// transition and commits Main through the same completion path. It is the
// escape hatch for programmatic resets: it is permitted even while a
// collapse is settling and preempts it.
func (c *Controller) JumpToMain(onComplete func()) {
	c.seq++
	seq := c.seq
	c.closing = false
	c.exec.Animate(Curve{}, func() {
		c.layout.SetOffset(c.main, 0)
	}, func(finished bool) {
		if c.seq == seq {
			c.state = StateMain
		}
		if onComplete != nil {
			onComplete()
		}
	})
}

// AddSwipeGestureInSide attaches a swipe listener for the given direction
// to an arbitrary host, routing to HandleSwipe. Pure pass-through
// registration; it has no state-machine effect of its own. No-op without a
// gesture source.
func (c *Controller) AddSwipeGestureInSide(h Host, d Direction) {
	if c.gestures == nil || h == nil {
		return
	}
	c.gestures.AddSwipe(h, d, c.swipe)
}

// swipe adapts HandleSwipe to the GestureSource handler signature.
func (c *Controller) swipe(d Direction) { c.HandleSwipe(d) }

// raise reorders the side hosts so the target side is drawn above the
// other. For a two-element stack, detaching the other side and reinserting
// it below the target is a front/back swap.
func (c *Controller) raise(target Side) {
	if c.front == target {
		return
	}
	other, targetHost := c.left, c.right
	if target == SideLeft {
		other, targetHost = c.right, c.left
	}
	c.layout.RemoveFromParent(other)
	c.layout.InsertBelow(other, targetHost)
	c.front = target
}
