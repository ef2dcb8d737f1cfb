// Package xr describes the platform augmented-reality API the application drives: support
// check, session negotiation, reference spaces, and per-frame hit testing against real surfaces.
//
// Calls that negotiate with the platform block and take a context; callers run them off the
// frame loop (see internal/async).
package xr

import (
	"context"
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is a session mode.
type Mode string

const ImmersiveAR Mode = "immersive-ar"

// Feature is a session capability.
type Feature string

const (
	FeatureHitTest         Feature = "hit-test"
	FeatureLocalFloor      Feature = "local-floor"
	FeatureDOMOverlay      Feature = "dom-overlay"
	FeatureLightEstimation Feature = "light-estimation"
)

// ReferenceSpaceType names a coordinate system offered by the session.
type ReferenceSpaceType string

const (
	SpaceViewer     ReferenceSpaceType = "viewer"
	SpaceLocalFloor ReferenceSpaceType = "local-floor"
)

var (
	// ErrNotSupported is returned when the mode or a required feature is unavailable.
	ErrNotSupported = errors.New("xr: not supported")
	// ErrDenied is returned when the user declines the session.
	ErrDenied = errors.New("xr: permission denied")
	// ErrSessionEnded is returned by calls on a session that has ended.
	ErrSessionEnded = errors.New("xr: session ended")
)

// SessionInit lists capabilities for RequestSession. Missing required features fail the request;
// missing optional ones are dropped.
type SessionInit struct {
	Required []Feature
	Optional []Feature
}

// Platform is the entry point of the AR API.
type Platform interface {
	IsSessionSupported(ctx context.Context, mode Mode) (bool, error)
	RequestSession(ctx context.Context, mode Mode, init SessionInit) (Session, error)
}

// Session is an active AR session.
type Session interface {
	RequestReferenceSpace(ctx context.Context, typ ReferenceSpaceType) (ReferenceSpace, error)
	RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error)
	// Frame returns the frame for the current animation tick, or nil once the session has ended.
	Frame() Frame
	EnabledFeatures() []Feature
	// End ends the session. End handlers run once; ending twice is a no-op.
	End() error
	// OnEnd registers fn to run when the session ends, however it ends.
	OnEnd(fn func())
}

// ReferenceSpace is a coordinate system.
type ReferenceSpace interface {
	Type() ReferenceSpaceType
}

// HitTestSource yields hit-test results each frame until cancelled.
type HitTestSource interface {
	Cancel()
}

// Frame is one animation tick of a session.
type Frame interface {
	// HitTestResults returns the surfaces hit by source this frame, nearest first, with poses in
	// the session's local-floor space.
	HitTestResults(source HitTestSource) []HitTestResult
}

// HitTestResult is one intersection with a detected real-world surface.
type HitTestResult struct {
	Pose Pose
}

// Pose is a rigid transform (position and orientation).
type Pose struct {
	Transform mgl32.Mat4
}

// NewPose returns a pose at position p with identity orientation.
func NewPose(p mgl32.Vec3) Pose {
	return Pose{Transform: mgl32.Translate3D(p[0], p[1], p[2])}
}

// Position returns the translation part of the pose.
func (p Pose) Position() mgl32.Vec3 {
	return p.Transform.Col(3).Vec3()
}

// HasFeature reports whether f is in features.
func HasFeature(features []Feature, f Feature) bool {
	return slices.Contains(features, f)
}
