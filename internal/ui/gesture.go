package ui

import "slidepane/internal/panel"

type swipeKey struct {
	host panel.Host
	dir  panel.Direction
}

// SwipeRouter is the demo's gesture source: key events stand in for touch
// swipes. The controller registers the main host's handlers at
// construction; side hosts are opted in explicitly. Implements
// panel.GestureSource.
type SwipeRouter struct {
	regs map[swipeKey][]func(panel.Direction)
}

var _ panel.GestureSource = (*SwipeRouter)(nil)

// NewSwipeRouter creates an empty router.
func NewSwipeRouter() *SwipeRouter {
	return &SwipeRouter{regs: make(map[swipeKey][]func(panel.Direction))}
}

// AddSwipe implements panel.GestureSource.
func (r *SwipeRouter) AddSwipe(h panel.Host, d panel.Direction, fn func(panel.Direction)) {
	k := swipeKey{host: h, dir: d}
	r.regs[k] = append(r.regs[k], fn)
}

// Dispatch delivers a swipe to the handlers registered for the host and
// direction. Reports whether any handler was registered.
func (r *SwipeRouter) Dispatch(h panel.Host, d panel.Direction) bool {
	fns := r.regs[swipeKey{host: h, dir: d}]
	for _, fn := range fns {
		fn(d)
	}
	return len(fns) > 0
}
