package anim

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"slidepane/internal/panel"
)

// DefaultFPS is the frame rate transitions are stepped at.
const DefaultFPS = 60

// settleTolerance is how close (in layout units) a spring must get to its
// target, at how little velocity, before the host snaps and the transition
// completes.
const settleTolerance = 0.05

// FrameMsg is delivered once per animation frame while transitions are
// active.
type FrameMsg struct {
	At time.Time
}

// Frame returns the command that schedules the next animation frame.
func Frame(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg{At: t}
	})
}

// Runner implements panel.Executor over a Stage. Animate captures the
// targets a transition assigns and interpolates each host's presented
// offset toward them: a damped harmonic spring when the curve carries a
// damping ratio, a time-based easing otherwise. Step advances all active
// transitions one frame; the caller pumps it from FrameMsg handling.
//
// Single-threaded like the controller: Animate and Step must run on the
// program's event loop.
type Runner struct {
	stage  *Stage
	fps    int
	active map[panel.Host]*animation
}

// NewRunner creates a runner stepping the given stage at fps.
func NewRunner(stage *Stage, fps int) *Runner {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Runner{
		stage:  stage,
		fps:    fps,
		active: make(map[panel.Host]*animation),
	}
}

// group fans a single Animate completion out across the hosts the mutate
// touched. finished stays true only if every member settled.
type group struct {
	remaining  int
	finished   bool
	onComplete func(finished bool)
}

func newGroup(n int, onComplete func(bool)) *group {
	return &group{remaining: n, finished: true, onComplete: onComplete}
}

func (g *group) done(finished bool) {
	g.remaining--
	if !finished {
		g.finished = false
	}
	if g.remaining == 0 && g.onComplete != nil {
		g.onComplete(g.finished)
	}
}

type animation struct {
	host   panel.Host
	target float64
	grp    *group

	// spring integration state
	spring harmonica.Spring
	sprung bool
	vel    float64

	// time-based fallback
	from   float64
	easing panel.Easing

	frame  int
	total  int // frames the curve's duration spans
}

// Animate implements panel.Executor.
func (r *Runner) Animate(c panel.Curve, mutate func(), onComplete func(finished bool)) {
	targets := r.stage.captureTargets(mutate)

	if c.Duration == 0 {
		for h, v := range targets {
			r.cancel(h)
			r.stage.apply(h, v)
		}
		if onComplete != nil {
			onComplete(true)
		}
		return
	}
	if len(targets) == 0 {
		if onComplete != nil {
			onComplete(true)
		}
		return
	}

	grp := newGroup(len(targets), onComplete)
	total := int(math.Round(c.Duration.Seconds() * float64(r.fps)))
	if total < 1 {
		total = 1
	}
	for h, target := range targets {
		r.cancel(h)
		a := &animation{
			host:   h,
			target: target,
			grp:    grp,
			from:   r.stage.Offset(h),
			easing: c.Easing,
			total:  total,
		}
		if c.SpringDamping > 0 {
			// Period matched to the requested duration so the spring
			// settles around it.
			omega := 2 * math.Pi / c.Duration.Seconds()
			a.spring = harmonica.NewSpring(harmonica.FPS(r.fps), omega, c.SpringDamping)
			a.sprung = true
			a.vel = c.InitialVelocity
		}
		r.active[h] = a
	}
}

// cancel completes any in-flight animation on h as unfinished. A transition
// is only ever superseded, never aborted in place.
func (r *Runner) cancel(h panel.Host) {
	if a, ok := r.active[h]; ok {
		delete(r.active, h)
		a.grp.done(false)
	}
}

// Active reports whether any transition is in flight.
func (r *Runner) Active() bool { return len(r.active) > 0 }

// Step advances every active transition one frame and reports whether any
// remain. Completion callbacks fire from here, on the caller's loop.
func (r *Runner) Step() bool {
	for h, a := range r.active {
		if r.step(a) {
			delete(r.active, h)
			a.grp.done(true)
		}
	}
	return len(r.active) > 0
}

// step advances one animation; reports whether it settled this frame.
func (r *Runner) step(a *animation) bool {
	a.frame++
	if a.sprung {
		pos := r.stage.Offset(a.host)
		pos, a.vel = a.spring.Update(pos, a.vel, a.target)
		if math.Abs(pos-a.target) < settleTolerance && math.Abs(a.vel) < settleTolerance {
			r.stage.apply(a.host, a.target)
			return true
		}
		// Snap if the spring has not settled well past the requested
		// duration; keeps a mistuned curve from animating forever.
		if a.frame > 4*a.total {
			r.stage.apply(a.host, a.target)
			return true
		}
		r.stage.apply(a.host, pos)
		return false
	}

	p := float64(a.frame) / float64(a.total)
	if p >= 1 {
		r.stage.apply(a.host, a.target)
		return true
	}
	if a.easing == panel.EaseInOut {
		p = 0.5 - 0.5*math.Cos(math.Pi*p)
	}
	r.stage.apply(a.host, a.from+(a.target-a.from)*p)
	return false
}
