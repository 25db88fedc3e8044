package gamestate

import (
	"raycaster/internal/collision"
	"raycaster/internal/mathutil"
	"raycaster/internal/projection"
)

// Player is the first-person viewpoint and the body that moves through the map.
type Player struct {
	X      float64
	Y      float64
	Angle  float64 // radians, (-Pi, Pi]
	FOV    float64 // radians
	Speed  float64 // world units per second
	Radius float64 // collision half extent
}

// Camera returns the projection camera for this player.
func (p Player) Camera() projection.Camera {
	return projection.Camera{X: p.X, Y: p.Y, Angle: p.Angle, FOV: p.FOV}
}

// Pose returns the position and heading used by the movement resolver.
func (p Player) Pose() collision.Pose {
	return collision.Pose{X: p.X, Y: p.Y, Angle: p.Angle}
}

// WithPose returns a copy of p at the given pose.
func (p Player) WithPose(pose collision.Pose) Player {
	p.X = pose.X
	p.Y = pose.Y
	p.Angle = mathutil.NormalizeAngle(pose.Angle)
	return p
}
