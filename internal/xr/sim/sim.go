// Package sim is a desktop stand-in for a platform AR API. The "device" is a viewer pose supplied
// by the host (the desktop camera) and the only detected surface is a horizontal floor plane: a
// hit-test source reports where the viewer's forward ray meets the floor, within range.
package sim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"ar-furniture/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewer returns the device position and normalized forward direction.
type Viewer func() (eye, forward mgl32.Vec3)

// Options configures the simulated platform.
type Options struct {
	// Unsupported makes the capability check report false and session requests fail.
	Unsupported bool
	// RejectSessions makes session requests fail as if the user declined.
	RejectSessions bool
	// Features the device offers. Nil means hit-test, local-floor, dom-overlay and light-estimation.
	Features []xr.Feature
	// HitRange is the farthest floor hit reported, in meters. Zero means 10.
	HitRange float32
	FloorY   float32
	// Viewer supplies the device pose each frame. Nil means a fixed pose at eye height looking
	// down and forward.
	Viewer Viewer
}

// Platform implements xr.Platform.
type Platform struct {
	opts     Options
	requests atomic.Int32
	mu       sync.Mutex
	current  *Session
}

// New returns a simulated platform.
func New(opts Options) *Platform {
	if opts.Features == nil {
		opts.Features = []xr.Feature{xr.FeatureHitTest, xr.FeatureLocalFloor, xr.FeatureDOMOverlay, xr.FeatureLightEstimation}
	}
	if opts.HitRange <= 0 {
		opts.HitRange = 10
	}
	if opts.Viewer == nil {
		opts.Viewer = FixedViewer(mgl32.Vec3{0, 1.6, 0}, mgl32.Vec3{0, -0.6, -1})
	}
	return &Platform{opts: opts}
}

// FixedViewer returns a Viewer that never moves.
func FixedViewer(eye, forward mgl32.Vec3) Viewer {
	f := forward.Normalize()
	return func() (mgl32.Vec3, mgl32.Vec3) { return eye, f }
}

// IsSessionSupported reports support for immersive-ar unless the platform is configured unsupported.
func (p *Platform) IsSessionSupported(ctx context.Context, mode xr.Mode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return mode == xr.ImmersiveAR && !p.opts.Unsupported, nil
}

// RequestSession grants a session when the mode and every required feature are supported.
func (p *Platform) RequestSession(ctx context.Context, mode xr.Mode, init xr.SessionInit) (xr.Session, error) {
	p.requests.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mode != xr.ImmersiveAR || p.opts.Unsupported {
		return nil, fmt.Errorf("%w: mode %s", xr.ErrNotSupported, mode)
	}
	if p.opts.RejectSessions {
		return nil, xr.ErrDenied
	}
	var enabled []xr.Feature
	for _, f := range init.Required {
		if !xr.HasFeature(p.opts.Features, f) {
			return nil, fmt.Errorf("%w: required feature %s", xr.ErrNotSupported, f)
		}
		enabled = append(enabled, f)
	}
	for _, f := range init.Optional {
		if xr.HasFeature(p.opts.Features, f) {
			enabled = append(enabled, f)
		}
	}
	s := &Session{platform: p, features: enabled}
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	return s, nil
}

// SessionRequests returns how many sessions were requested.
func (p *Platform) SessionRequests() int {
	return int(p.requests.Load())
}

// Current returns the most recently granted session, or nil.
func (p *Platform) Current() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Session implements xr.Session.
type Session struct {
	platform *Platform
	features []xr.Feature

	sourceRequests atomic.Int32
	spaceRequests  atomic.Int32

	mu    sync.Mutex
	ended bool
	onEnd []func()
}

type space struct {
	typ xr.ReferenceSpaceType
}

func (s space) Type() xr.ReferenceSpaceType { return s.typ }

type hitSource struct {
	session   *Session
	space     xr.ReferenceSpace
	cancelled atomic.Bool
}

func (h *hitSource) Cancel() { h.cancelled.Store(true) }

// RequestReferenceSpace returns viewer or local-floor spaces.
func (s *Session) RequestReferenceSpace(ctx context.Context, typ xr.ReferenceSpaceType) (xr.ReferenceSpace, error) {
	s.spaceRequests.Add(1)
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	switch typ {
	case xr.SpaceViewer, xr.SpaceLocalFloor:
		return space{typ: typ}, nil
	}
	return nil, fmt.Errorf("%w: reference space %s", xr.ErrNotSupported, typ)
}

// RequestHitTestSource returns a source casting from the viewer. Requires the hit-test feature.
func (s *Session) RequestHitTestSource(ctx context.Context, sp xr.ReferenceSpace) (xr.HitTestSource, error) {
	s.sourceRequests.Add(1)
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if !xr.HasFeature(s.features, xr.FeatureHitTest) {
		return nil, fmt.Errorf("%w: hit-test not enabled", xr.ErrNotSupported)
	}
	if sp == nil {
		return nil, fmt.Errorf("sim: nil reference space")
	}
	return &hitSource{session: s, space: sp}, nil
}

// HitTestSourceRequests returns how many hit-test sources were requested on this session.
func (s *Session) HitTestSourceRequests() int {
	return int(s.sourceRequests.Load())
}

// ReferenceSpaceRequests returns how many reference spaces were requested on this session.
func (s *Session) ReferenceSpaceRequests() int {
	return int(s.spaceRequests.Load())
}

// Frame returns the current frame, or nil after End.
func (s *Session) Frame() xr.Frame {
	if s.Ended() {
		return nil
	}
	return frame{session: s}
}

// EnabledFeatures returns the granted features.
func (s *Session) EnabledFeatures() []xr.Feature {
	out := make([]xr.Feature, len(s.features))
	copy(out, s.features)
	return out
}

// End ends the session and runs end handlers once.
func (s *Session) End() error {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil
	}
	s.ended = true
	handlers := s.onEnd
	s.onEnd = nil
	s.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
	return nil
}

// OnEnd registers an end handler. Handlers registered after the session ended never run.
func (s *Session) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ended {
		s.onEnd = append(s.onEnd, fn)
	}
}

// Ended reports whether End was called.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *Session) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Ended() {
		return xr.ErrSessionEnded
	}
	return nil
}

type frame struct {
	session *Session
}

// HitTestResults intersects the viewer's forward ray with the floor plane.
func (f frame) HitTestResults(source xr.HitTestSource) []xr.HitTestResult {
	hs, ok := source.(*hitSource)
	if !ok || hs.session != f.session || hs.cancelled.Load() || f.session.Ended() {
		return nil
	}
	opts := f.session.platform.opts
	eye, fwd := opts.Viewer()
	p, ok := FloorHit(eye, fwd, opts.FloorY, opts.HitRange)
	if !ok {
		return nil
	}
	return []xr.HitTestResult{{Pose: xr.NewPose(p)}}
}

// FloorHit intersects the ray eye+t*forward with the plane y = floorY. Hits farther than maxRange
// (measured along the ray) or behind the eye are misses.
func FloorHit(eye, forward mgl32.Vec3, floorY, maxRange float32) (mgl32.Vec3, bool) {
	dir := forward.Normalize()
	if dir.Y() > -1e-4 {
		return mgl32.Vec3{}, false
	}
	t := (floorY - eye.Y()) / dir.Y()
	if t < 0 || t > maxRange {
		return mgl32.Vec3{}, false
	}
	return eye.Add(dir.Mul(t)), true
}
