package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/procmesh/pkg/math"
)

// orbitCamera circles a center point at a fixed pitch.
type orbitCamera struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y
	FovY     float32

	MinDistance float32
	MaxDistance float32
}

func newOrbitCamera() *orbitCamera {
	return &orbitCamera{
		Distance:    3,
		Pitch:       0.5,
		FovY:        math32.Pi / 4,
		MinDistance: 0.01,
		MaxDistance: 1e4,
	}
}

// orientation turns camera space into world space: pitch about +X, then
// yaw about +Y. The camera looks down its -Z axis.
func (c *orbitCamera) orientation() math.Quat {
	yaw := math.QuatFromAxisAngle(math.V3(0, 1, 0), c.Yaw)
	pitch := math.QuatFromAxisAngle(math.V3(1, 0, 0), -c.Pitch)
	return yaw.Mul(pitch)
}

// position returns the eye in world space.
func (c *orbitCamera) position() math.Vec3 {
	return c.Center.Add(c.orientation().Rotate(math.V3(0, 0, c.Distance)))
}

func (c *orbitCamera) view() math.Mat4 {
	eye := c.position()
	return c.orientation().Conjugate().ToMat4().Mul(math.Translate(-eye.X, -eye.Y, -eye.Z))
}

// projection keeps the near/far ratio fixed relative to the distance.
func (c *orbitCamera) projection(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Distance*0.01, c.Distance*10)
}

// orbit advances the yaw, wrapped to [0, 2π).
func (c *orbitCamera) orbit(delta float32) {
	c.Yaw = math32.Mod(c.Yaw+delta, 2*math32.Pi)
	if c.Yaw < 0 {
		c.Yaw += 2 * math32.Pi
	}
}

func (c *orbitCamera) zoom(delta float32) {
	c.Distance -= delta * c.Distance * 0.1
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// fit centers the camera on the box lo..hi and backs off until its
// bounding sphere fills the vertical field of view.
func (c *orbitCamera) fit(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math32.Sin(c.FovY/2)
}

// bounds returns the axis-aligned box of the positions.
func bounds(positions [][3]float32) (math.Vec3, math.Vec3) {
	if len(positions) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	lo := math.V3(positions[0][0], positions[0][1], positions[0][2])
	hi := lo
	for _, p := range positions[1:] {
		lo = math.V3(min(lo.X, p[0]), min(lo.Y, p[1]), min(lo.Z, p[2]))
		hi = math.V3(max(hi.X, p[0]), max(hi.Y, p[1]), max(hi.Z, p[2]))
	}
	return lo, hi
}
