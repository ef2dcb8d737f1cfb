// Package session drives the AR session lifecycle: capability check at startup, start on request,
// and exit (user-initiated or platform-initiated) with cleanup of everything the session created.
package session

import (
	"context"
	"errors"
	"fmt"

	"ar-furniture/internal/async"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/xr"
)

var (
	// ErrUnsupported is returned by Start when the device cannot run immersive AR.
	ErrUnsupported = errors.New("session: AR not supported")
	// ErrStartFailed wraps a rejected session request.
	ErrStartFailed = errors.New("session: start failed")
)

// Status and notice texts.
const (
	MsgPointAtFloor = "Point your camera at the floor to place furniture"
	MsgStartFailed  = "AR start failed. Please try again."
	MsgUnsupported  = "AR not supported on this device"
)

// Init is the feature set requested for every session.
var Init = xr.SessionInit{
	Required: []xr.Feature{xr.FeatureHitTest, xr.FeatureLocalFloor},
	Optional: []xr.Feature{xr.FeatureDOMOverlay, xr.FeatureLightEstimation},
}

// State is the session lifecycle state.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Layout is the part of the UI the session switches between browsing and AR.
type Layout interface {
	ShowBrowsing()
	ShowAR()
	ShowCatalog(visible bool)
	SetStartEnabled(enabled bool)
	Notice(text string)
}

// StatusSink receives instruction text.
type StatusSink interface {
	SetStatus(text string)
}

// Controller owns the platform session. All methods run on the frame-loop goroutine.
type Controller struct {
	platform xr.Platform
	queue    *async.Queue
	log      *logger.Logger
	layout   Layout
	status   StatusSink

	supported  bool
	state      State
	session    xr.Session
	requesting bool
	hooks      []func()
	// gen invalidates a session request still in flight when Exit runs.
	gen uint64
}

// NewController returns an idle controller. Start is refused until CheckSupport confirms support.
func NewController(platform xr.Platform, queue *async.Queue, log *logger.Logger, layout Layout, status StatusSink) *Controller {
	return &Controller{platform: platform, queue: queue, log: log, layout: layout, status: status}
}

// OnExit registers fn to run on every Exit, after the platform session is ended.
func (c *Controller) OnExit(fn func()) {
	c.hooks = append(c.hooks, fn)
}

// CheckSupport asks the platform, once, whether immersive AR is supported. The start control stays
// disabled until the answer is yes; otherwise a notice is shown and nothing is retried.
func (c *Controller) CheckSupport(ctx context.Context) {
	c.layout.SetStartEnabled(false)
	async.Go(ctx, c.queue, func(ctx context.Context) (bool, error) {
		return c.platform.IsSessionSupported(ctx, xr.ImmersiveAR)
	}, func(ok bool, err error) {
		if err != nil {
			c.log.Logf("session: support check: %v", err)
		}
		c.supported = ok && err == nil
		c.layout.SetStartEnabled(c.supported)
		if !c.supported {
			c.layout.Notice(MsgUnsupported)
		}
	})
}

// Start switches to the AR layout and requests a session. The result is applied on a later Drain.
// Calling Start while active or while a request is pending does nothing.
func (c *Controller) Start(ctx context.Context) error {
	if !c.supported {
		return ErrUnsupported
	}
	if c.state == Active || c.requesting {
		return nil
	}
	c.requesting = true
	c.layout.ShowAR()
	gen := c.gen
	async.Go(ctx, c.queue, func(ctx context.Context) (xr.Session, error) {
		return c.platform.RequestSession(ctx, xr.ImmersiveAR, Init)
	}, func(s xr.Session, err error) {
		if gen != c.gen {
			// Exit ran while the request was pending.
			if s != nil {
				_ = s.End()
			}
			return
		}
		c.requesting = false
		if err != nil {
			c.log.Logf("%v", fmt.Errorf("%w: %v", ErrStartFailed, err))
			c.status.SetStatus(MsgStartFailed)
			c.layout.ShowBrowsing()
			c.state = Idle
			return
		}
		c.activate(s)
	})
	return nil
}

func (c *Controller) activate(s xr.Session) {
	c.session = s
	c.state = Active
	s.OnEnd(func() {
		c.queue.Post(func() {
			if c.session == s {
				c.Exit()
			}
		})
	})
	c.layout.ShowCatalog(true)
	c.status.SetStatus(MsgPointAtFloor)
	c.log.Logf("session: started with %v", s.EnabledFeatures())
}

// Exit ends the platform session if one is open, runs exit hooks, and restores the browsing
// layout. Safe to call any number of times.
func (c *Controller) Exit() {
	c.gen++
	c.requesting = false
	if s := c.session; s != nil {
		c.session = nil
		if err := s.End(); err != nil {
			c.log.Logf("session: end: %v", err)
		}
		c.log.Log("session: ended")
	}
	for _, fn := range c.hooks {
		fn()
	}
	c.state = Idle
	c.layout.ShowCatalog(false)
	c.layout.ShowBrowsing()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	return c.state == Active
}

// Pending reports whether a session request is in flight.
func (c *Controller) Pending() bool {
	return c.requesting
}

// Supported reports the support check result (false until the check completes).
func (c *Controller) Supported() bool {
	return c.supported
}

// Session returns the open platform session, or nil.
func (c *Controller) Session() xr.Session {
	return c.session
}
