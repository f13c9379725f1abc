package component

import "github.com/illdynamics/qommandah-qeen/physics"

// PhysicsBody wraps the kinematic body with what the last physics pass
// reported about it.
type PhysicsBody struct {
	Body *physics.Body
	// Prev is the body as committed at the end of the previous tick, kept for
	// render interpolation.
	Prev physics.BodySnapshot
	// Integrated is the velocity the integrator produced before collision.
	Integrated physics.Vec
	Contacts   physics.Contacts
	Landed     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Motor is the force request for this tick, written by a decide or AI system
// and consumed by the physics system.
type Motor struct {
	Drive  physics.Drive
	Params physics.Params
}

var MotorComponent = NewComponent[Motor]()
