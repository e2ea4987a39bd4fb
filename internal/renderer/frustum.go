package renderer

import "github.com/go-gl/mathgl/mgl32"

// Plane is n.p + D = 0 with a unit normal facing into the frustum.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance is the signed distance of p, positive on the inner side.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Frustum holds the left, right, bottom, top, near and far planes.
type Frustum [6]Plane

// FrustumOf extracts the planes of a projection-view matrix. Each pair is
// the last row plus and minus one of the first three.
func FrustumOf(pv mgl32.Mat4) Frustum {
	var f Frustum
	w := pv.Row(3)
	for axis := 0; axis < 3; axis++ {
		r := pv.Row(axis)
		f[2*axis] = planeOf(w.Add(r))
		f[2*axis+1] = planeOf(w.Sub(r))
	}
	return f
}

func planeOf(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{D: v.W()}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// ContainsSphere reports whether any part of the sphere is inside.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, pl := range f {
		if pl.Distance(center) < -radius {
			return false
		}
	}
	return true
}
