package tracker

import (
	"context"

	"ar-furniture/internal/async"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/scene"
	"ar-furniture/internal/xr"
)

// Tracker turns per-frame hit-test results into the reticle pose. The hit-test source is
// requested once per session, on the first frame: a viewer reference space first, then a source
// bound to it. Both requests run off the frame loop; their results land through the queue.
type Tracker struct {
	queue   *async.Queue
	log     *logger.Logger
	reticle *scene.Node

	requested bool
	source    xr.HitTestSource
	pose      xr.Pose
	visible   bool
	// gen invalidates requests still in flight when Reset runs.
	gen uint64
}

// New returns a tracker driving reticle. The reticle starts hidden.
func New(queue *async.Queue, log *logger.Logger, reticle *scene.Node) *Tracker {
	reticle.Visible = false
	return &Tracker{queue: queue, log: log, reticle: reticle}
}

// Update runs once per frame before drawing. frame may be nil (no session frame this tick).
func (t *Tracker) Update(ctx context.Context, session xr.Session, frame xr.Frame) {
	if session == nil || frame == nil {
		return
	}
	if !t.requested {
		t.requested = true
		t.requestSource(ctx, session)
	}
	if t.source == nil {
		return
	}
	results := frame.HitTestResults(t.source)
	if len(results) == 0 {
		t.visible = false
		t.reticle.Visible = false
		return
	}
	t.pose = results[0].Pose
	t.visible = true
	t.reticle.SetMatrix(t.pose.Transform)
	t.reticle.Visible = true
}

func (t *Tracker) requestSource(ctx context.Context, session xr.Session) {
	gen := t.gen
	async.Go(ctx, t.queue, func(ctx context.Context) (xr.ReferenceSpace, error) {
		return session.RequestReferenceSpace(ctx, xr.SpaceViewer)
	}, func(space xr.ReferenceSpace, err error) {
		if gen != t.gen {
			return
		}
		if err != nil {
			t.log.Logf("tracker: viewer reference space: %v", err)
			return
		}
		async.Go(ctx, t.queue, func(ctx context.Context) (xr.HitTestSource, error) {
			return session.RequestHitTestSource(ctx, space)
		}, func(src xr.HitTestSource, err error) {
			if err != nil {
				if gen == t.gen {
					t.log.Logf("tracker: hit-test source: %v", err)
				}
				return
			}
			if gen != t.gen {
				src.Cancel()
				return
			}
			t.source = src
		})
	})
}

// Reset drops per-session state: the request guard, the cached source (cancelled), the pose,
// and any request still in flight. The next session starts from scratch.
func (t *Tracker) Reset() {
	t.gen++
	t.requested = false
	if t.source != nil {
		t.source.Cancel()
		t.source = nil
	}
	t.visible = false
	t.pose = xr.Pose{}
	t.reticle.Visible = false
	t.reticle.ClearMatrix()
}

// Pose returns the last tracked pose and whether the reticle is currently visible.
func (t *Tracker) Pose() (xr.Pose, bool) {
	return t.pose, t.visible
}

// Requested reports whether the hit-test source was requested for the current session.
func (t *Tracker) Requested() bool {
	return t.requested
}

// SourceReady reports whether the hit-test source has resolved.
func (t *Tracker) SourceReady() bool {
	return t.source != nil
}

// Reticle returns the cursor node.
func (t *Tracker) Reticle() *scene.Node {
	return t.reticle
}
