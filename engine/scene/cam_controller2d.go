package scene

import (
	"math"

	"github.com/hubastard/cratepush/engine/geom"
)

// FollowController eases the camera toward a moving target.
type FollowController struct {
	Camera *OrthoCamera2D
	// Stiffness is the exponential approach rate per second. Zero snaps.
	Stiffness float32
}

func NewFollowController(cam *OrthoCamera2D) *FollowController {
	return &FollowController{
		Camera:    cam,
		Stiffness: 10,
	}
}

func (fc *FollowController) Update(target geom.Vec2, dt float32) {
	if fc.Stiffness <= 0 {
		fc.Snap(target)
		return
	}
	if dt <= 0 {
		return
	}
	t := 1 - float32(math.Exp(-float64(fc.Stiffness*dt)))
	pos := fc.Camera.Position()
	fc.Camera.SetPosition(pos.Add(target.Sub(pos).Scale(t)))
}

func (fc *FollowController) Snap(target geom.Vec2) { fc.Camera.SetPosition(target) }
