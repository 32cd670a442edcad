// Package anim provides the stock animation executor and presentation
// stage for slide-panel transitions in Bubble Tea programs. The Stage is
// the layout the panel controller drives; the Runner interpolates
// presented offsets toward the targets a transition assigns, one frame per
// FrameMsg.
package anim

import "slidepane/internal/panel"

// Stage tracks the draw order, width, and presented horizontal offset of
// every host. It implements panel.Layout. While an animated mutate is
// running, SetOffset records targets for the Runner instead of moving the
// host; direct calls outside a transition apply immediately.
type Stage struct {
	order   []panel.Host
	offsets map[panel.Host]float64
	widths  map[panel.Host]float64
	capture map[panel.Host]float64 // non-nil only during an animated mutate
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{
		offsets: make(map[panel.Host]float64),
		widths:  make(map[panel.Host]float64),
	}
}

// AddHost places h on top of the draw order with the given width.
func (s *Stage) AddHost(h panel.Host, width float64) {
	if s.indexOf(h) >= 0 {
		return
	}
	s.order = append(s.order, h)
	s.widths[h] = width
}

// SetWidth updates the width of h (e.g. on terminal resize).
func (s *Stage) SetWidth(h panel.Host, width float64) {
	s.widths[h] = width
}

// InsertBelow implements panel.Layout.
func (s *Stage) InsertBelow(h, below panel.Host) {
	s.RemoveFromParent(h)
	i := s.indexOf(below)
	if i < 0 {
		s.order = append(s.order, h)
		return
	}
	s.order = append(s.order[:i], append([]panel.Host{h}, s.order[i:]...)...)
}

// RemoveFromParent implements panel.Layout.
func (s *Stage) RemoveFromParent(h panel.Host) {
	if i := s.indexOf(h); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// SetOffset implements panel.Layout. Inside an animated mutate the value
// becomes the transition target; otherwise the host jumps there.
func (s *Stage) SetOffset(h panel.Host, offset float64) {
	if s.capture != nil {
		s.capture[h] = offset
		return
	}
	s.offsets[h] = offset
}

// Width implements panel.Layout.
func (s *Stage) Width(h panel.Host) float64 { return s.widths[h] }

// Offset returns the presented offset of h, the value a renderer should
// draw this frame.
func (s *Stage) Offset(h panel.Host) float64 { return s.offsets[h] }

// Order returns the hosts bottom-to-top.
func (s *Stage) Order() []panel.Host {
	out := make([]panel.Host, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Stage) indexOf(h panel.Host) int {
	for i, o := range s.order {
		if o == h {
			return i
		}
	}
	return -1
}

// captureTargets runs mutate with offset capture enabled and returns the
// targets it assigned. Presented offsets are untouched.
func (s *Stage) captureTargets(mutate func()) map[panel.Host]float64 {
	s.capture = make(map[panel.Host]float64)
	defer func() { s.capture = nil }()
	mutate()
	return s.capture
}

// apply moves a host's presented offset directly.
func (s *Stage) apply(h panel.Host, offset float64) {
	s.offsets[h] = offset
}
