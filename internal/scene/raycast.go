package scene

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is one ray intersection with a node's geometry.
type Hit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// IntersectNodes tests ray against the world-space bounds of nodes (and, when recursive, all
// their descendants). Invisible nodes and their subtrees are skipped. Hits are sorted nearest first.
func IntersectNodes(ray Ray, nodes []*Node, recursive bool) []Hit {
	var hits []Hit
	for _, n := range nodes {
		intersectNode(ray, n, recursive, &hits)
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

func intersectNode(ray Ray, n *Node, recursive bool, hits *[]Hit) {
	if n == nil || !n.Visible {
		return
	}
	if n.Bounds != nil {
		box := n.Bounds.Transform(n.WorldMatrix())
		if t, ok := box.IntersectRay(ray); ok {
			*hits = append(*hits, Hit{Node: n, Distance: t, Point: ray.At(t)})
		}
	}
	if !recursive {
		return
	}
	for _, c := range n.children {
		intersectNode(ray, c, true, hits)
	}
}
