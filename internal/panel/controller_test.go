package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLayout maintains a bottom-to-top draw order and per-host offsets so
// tests can assert layering and displacement without a terminal.
type fakeLayout struct {
	order   []Host
	offsets map[Host]float64
	widths  map[Host]float64
}

func newFakeLayout(hosts ...Host) *fakeLayout {
	l := &fakeLayout{
		offsets: make(map[Host]float64),
		widths:  make(map[Host]float64),
	}
	l.order = append(l.order, hosts...)
	return l
}

func (l *fakeLayout) indexOf(h Host) int {
	for i, o := range l.order {
		if o == h {
			return i
		}
	}
	return -1
}

func (l *fakeLayout) InsertBelow(h, below Host) {
	l.RemoveFromParent(h)
	i := l.indexOf(below)
	if i < 0 {
		l.order = append(l.order, h)
		return
	}
	l.order = append(l.order[:i], append([]Host{h}, l.order[i:]...)...)
}

func (l *fakeLayout) RemoveFromParent(h Host) {
	if i := l.indexOf(h); i >= 0 {
		l.order = append(l.order[:i], l.order[i+1:]...)
	}
}

func (l *fakeLayout) SetOffset(h Host, offset float64) { l.offsets[h] = offset }
func (l *fakeLayout) Width(h Host) float64             { return l.widths[h] }

// above reports whether a is drawn on top of b.
func (l *fakeLayout) above(a, b Host) bool { return l.indexOf(a) > l.indexOf(b) }

// immediateExec applies mutations and completes synchronously.
type immediateExec struct {
	calls  int
	curves []Curve
}

func (e *immediateExec) Animate(c Curve, mutate func(), onComplete func(finished bool)) {
	e.calls++
	e.curves = append(e.curves, c)
	mutate()
	if onComplete != nil {
		onComplete(true)
	}
}

// manualExec applies mutations immediately but holds non-zero-duration
// completions until the test fires them, simulating in-flight animations.
type manualExec struct {
	calls   int
	pending []func(finished bool)
}

func (e *manualExec) Animate(c Curve, mutate func(), onComplete func(finished bool)) {
	e.calls++
	mutate()
	if onComplete == nil {
		return
	}
	if c.Duration == 0 {
		onComplete(true)
		return
	}
	e.pending = append(e.pending, onComplete)
}

// finish fires the oldest pending completion.
func (e *manualExec) finish(t *testing.T, finished bool) {
	t.Helper()
	if len(e.pending) == 0 {
		t.Fatal("no pending completion")
	}
	cb := e.pending[0]
	e.pending = e.pending[1:]
	cb(finished)
}

type gestureReg struct {
	host Host
	dir  Direction
	fn   func(Direction)
}

type fakeGestures struct {
	regs []gestureReg
}

func (g *fakeGestures) AddSwipe(h Host, d Direction, fn func(Direction)) {
	g.regs = append(g.regs, gestureReg{host: h, dir: d, fn: fn})
}

func (g *fakeGestures) fire(t *testing.T, h Host, d Direction) {
	t.Helper()
	for _, r := range g.regs {
		if r.host == h && r.dir == d {
			r.fn(d)
			return
		}
	}
	t.Fatalf("no swipe registration for host %v direction %v", h, d)
}

const (
	hostMain  = "main"
	hostLeft  = "left"
	hostRight = "right"
)

func newTestController(exec Executor, opts ...Option) (*Controller, *fakeLayout) {
	layout := newFakeLayout(hostMain, hostLeft, hostRight)
	layout.widths[hostMain] = 300
	c := New(layout, exec, hostMain, hostLeft, hostRight, opts...)
	return c, layout
}

func TestNew_InitialLayeringAndState(t *testing.T) {
	c, layout := newTestController(&immediateExec{})

	assert.Equal(t, []Host{hostMain, hostRight, hostLeft}, layout.order)
	assert.Equal(t, StateMain, c.State())
	assert.Equal(t, SideLeft, c.Front())
	assert.False(t, c.Transitioning())
}

func TestNew_Preconditions(t *testing.T) {
	layout := newFakeLayout(hostMain, hostLeft, hostRight)
	exec := &immediateExec{}

	require.Panics(t, func() { New(nil, exec, hostMain, hostLeft, hostRight) })
	require.Panics(t, func() { New(layout, nil, hostMain, hostLeft, hostRight) })
	require.Panics(t, func() { New(layout, exec, nil, hostLeft, hostRight) })
	require.Panics(t, func() { New(layout, exec, hostMain, nil, hostRight) })
	require.Panics(t, func() { New(layout, exec, hostMain, hostLeft, nil) })
	require.Panics(t, func() {
		New(layout, exec, hostMain, hostLeft, hostRight, WithOffsets(-1, 150))
	})
}

func TestHandleSwipe_CrossMappingFromMain(t *testing.T) {
	// Content follows the finger: swiping left reveals the right pane.
	c, _ := newTestController(&immediateExec{})
	assert.True(t, c.HandleSwipe(DirLeft))
	assert.Equal(t, StateRightOpen, c.State())

	c, _ = newTestController(&immediateExec{})
	assert.True(t, c.HandleSwipe(DirRight))
	assert.Equal(t, StateLeftOpen, c.State())
}

func TestHandleSwipe_ClosesFromOpenStates(t *testing.T) {
	cases := []struct {
		name  string
		open  Side
		swipe Direction
	}{
		{"left pane, swipe left closes", SideLeft, DirLeft},
		{"left pane, swipe right collapses", SideLeft, DirRight},
		{"right pane, swipe right closes", SideRight, DirRight},
		{"right pane, swipe left collapses", SideRight, DirLeft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, layout := newTestController(&immediateExec{})
			require.True(t, c.Open(tc.open))
			assert.True(t, c.HandleSwipe(tc.swipe))
			assert.Equal(t, StateMain, c.State())
			assert.Equal(t, 0.0, layout.offsets[hostMain])
		})
	}
}

func TestOpen_Displacement(t *testing.T) {
	// mainWidth=300, offsets 150/150: left opens to +150, right to -150.
	c, layout := newTestController(&immediateExec{})

	require.True(t, c.Open(SideLeft))
	assert.Equal(t, 150.0, layout.offsets[hostMain])

	c.JumpToMain(nil)
	require.True(t, c.Open(SideRight))
	assert.Equal(t, -150.0, layout.offsets[hostMain])
}

func TestOpen_UsesSlideCurve(t *testing.T) {
	exec := &immediateExec{}
	c, _ := newTestController(exec)
	c.Open(SideLeft)

	require.Len(t, exec.curves, 1)
	curve := exec.curves[0]
	assert.Equal(t, 500*time.Millisecond, curve.Duration)
	assert.Equal(t, EaseInOut, curve.Easing)
	assert.Equal(t, 0.8, curve.SpringDamping)
	assert.Equal(t, 0.0, curve.InitialVelocity)
}

func TestWithCurve_OverridesSlideTiming(t *testing.T) {
	exec := &immediateExec{}
	custom := Curve{Duration: 250 * time.Millisecond, Easing: EaseLinear, SpringDamping: 0.5}
	c, _ := newTestController(exec, WithCurve(custom))

	require.True(t, c.Open(SideLeft))
	require.True(t, c.Collapse())

	require.Len(t, exec.curves, 2)
	assert.Equal(t, custom, exec.curves[0])
	assert.Equal(t, custom, exec.curves[1], "close uses the configured curve too")
}

func TestOpen_CommitsStateBeforeCompletion(t *testing.T) {
	exec := &manualExec{}
	c, _ := newTestController(exec)

	require.True(t, c.Open(SideLeft))
	// Open commits synchronously at request time, before the slide is
	// visually done.
	assert.Equal(t, StateLeftOpen, c.State())
}

func TestClose_CommitsMainOnlyOnCompletion(t *testing.T) {
	exec := &manualExec{}
	c, layout := newTestController(exec)
	require.True(t, c.Open(SideLeft))

	require.True(t, c.Close(SideLeft))
	assert.Equal(t, StateLeftOpen, c.State(), "close must not commit before completion")
	assert.True(t, c.Transitioning())
	assert.Equal(t, 0.0, layout.offsets[hostMain], "target applied at request time")

	exec.finish(t, true)
	assert.Equal(t, StateMain, c.State())
	assert.False(t, c.Transitioning())
}

func TestClose_UnfinishedAnimationKeepsState(t *testing.T) {
	exec := &manualExec{}
	c, _ := newTestController(exec)
	require.True(t, c.Open(SideRight))

	require.True(t, c.Collapse())
	exec.finish(t, false)

	assert.Equal(t, StateRightOpen, c.State())
	assert.False(t, c.Transitioning())
}

func TestClose_WrongSideIsNoop(t *testing.T) {
	exec := &immediateExec{}
	c, _ := newTestController(exec)
	require.True(t, c.Open(SideLeft))
	calls := exec.calls

	assert.False(t, c.Close(SideRight))
	assert.Equal(t, calls, exec.calls)
	assert.Equal(t, StateLeftOpen, c.State())
}

func TestCollapse_IdempotentFromMain(t *testing.T) {
	exec := &immediateExec{}
	c, _ := newTestController(exec)

	assert.False(t, c.Collapse())
	assert.False(t, c.CollapseAll())
	assert.Equal(t, 0, exec.calls, "no animation request from Main")
	assert.Equal(t, StateMain, c.State())
}

func TestOpenClose_RoundTrip(t *testing.T) {
	c, layout := newTestController(&immediateExec{})

	require.True(t, c.Open(SideLeft))
	require.True(t, c.Close(SideLeft))

	assert.Equal(t, StateMain, c.State())
	assert.Equal(t, 0.0, layout.offsets[hostMain])
}

func TestLayering_LastOpenedSideIsInFront(t *testing.T) {
	c, layout := newTestController(&immediateExec{})

	require.True(t, c.Open(SideRight))
	assert.True(t, layout.above(hostRight, hostLeft))
	assert.Equal(t, SideRight, c.Front())

	// Retarget without an intervening close.
	require.True(t, c.Open(SideLeft))
	assert.True(t, layout.above(hostLeft, hostRight))
	assert.Equal(t, SideLeft, c.Front())
}

func TestJumpToMain_CommitsSynchronously(t *testing.T) {
	exec := &manualExec{}
	c, layout := newTestController(exec)
	require.True(t, c.Open(SideRight))

	var done bool
	c.JumpToMain(func() { done = true })

	assert.Equal(t, StateMain, c.State())
	assert.Equal(t, 0.0, layout.offsets[hostMain])
	assert.True(t, done)
}

func TestNavigation_RejectedWhileClosing(t *testing.T) {
	exec := &manualExec{}
	c, _ := newTestController(exec)
	require.True(t, c.Open(SideLeft))
	require.True(t, c.Collapse())

	assert.False(t, c.Open(SideRight))
	assert.False(t, c.Collapse())
	assert.False(t, c.HandleSwipe(DirLeft))
	assert.Equal(t, StateLeftOpen, c.State())

	exec.finish(t, true)
	assert.Equal(t, StateMain, c.State())
	assert.True(t, c.Open(SideRight))
}

func TestJumpToMain_PreemptsPendingClose(t *testing.T) {
	exec := &manualExec{}
	c, _ := newTestController(exec)
	require.True(t, c.Open(SideLeft))
	require.True(t, c.Collapse())

	c.JumpToMain(nil)
	assert.Equal(t, StateMain, c.State())
	assert.False(t, c.Transitioning())

	require.True(t, c.Open(SideRight))
	// The preempted close's completion arrives late; it must not clobber
	// the newer transition.
	exec.finish(t, true)
	assert.Equal(t, StateRightOpen, c.State())
}

func TestToggle_StringShim(t *testing.T) {
	c, _ := newTestController(&immediateExec{})

	assert.True(t, c.Toggle("left"))
	assert.Equal(t, StateRightOpen, c.State())

	c.JumpToMain(nil)
	assert.True(t, c.Toggle("Right"))
	assert.Equal(t, StateLeftOpen, c.State())

	assert.False(t, c.Toggle("up"))
}

func TestGestures_MainHostRegisteredAtInit(t *testing.T) {
	src := &fakeGestures{}
	layout := newFakeLayout(hostMain, hostLeft, hostRight)
	layout.widths[hostMain] = 300
	c := New(layout, &immediateExec{}, hostMain, hostLeft, hostRight, WithGestures(src))

	require.Len(t, src.regs, 2)
	for _, r := range src.regs {
		assert.Equal(t, Host(hostMain), r.host)
	}

	src.fire(t, hostMain, DirLeft)
	assert.Equal(t, StateRightOpen, c.State())
}

func TestAddSwipeGestureInSide_PassThrough(t *testing.T) {
	src := &fakeGestures{}
	layout := newFakeLayout(hostMain, hostLeft, hostRight)
	layout.widths[hostMain] = 300
	c := New(layout, &immediateExec{}, hostMain, hostLeft, hostRight, WithGestures(src))

	c.AddSwipeGestureInSide(hostRight, DirRight)
	require.Len(t, src.regs, 3)

	require.True(t, c.Open(SideRight))
	src.fire(t, hostRight, DirRight)
	assert.Equal(t, StateMain, c.State())
}

func TestHandleSwipe_AlwaysSingleOpenPane(t *testing.T) {
	// Any swipe sequence leaves exactly one of the three states holding.
	dirs := []Direction{DirLeft, DirLeft, DirRight, DirRight, DirLeft, DirRight, DirRight, DirLeft}
	c, _ := newTestController(&immediateExec{})
	for _, d := range dirs {
		c.HandleSwipe(d)
		s := c.State()
		assert.Contains(t, []State{StateMain, StateLeftOpen, StateRightOpen}, s)
	}
}
