// Package engine defines the narrow rigid-body API the simulation consumes.
//
// The simulation never talks to a physics library directly. It creates
// bodies, attaches fixtures, connects wheels with motorized revolute joints,
// steps the world and queries transforms through the interfaces here:
//
//   - [World]: body/joint lifecycle and fixed-step integration
//   - [Body]: pose and velocity queries, fixture attachment
//   - [Joint]: revolute motor control
//
// Adapters register themselves by name (see [Register]) so callers select a
// backend at runtime:
//
//	import _ "github.com/san-kum/rampsim/internal/engine/box2d"
//
//	w, err := engine.Open("box2d", geom.V(0, -9.81))
//
// # Conventions
//
// Y points up and angles are counter-clockwise in radians. A positive motor
// speed turns body B counter-clockwise relative to body A, so a wheel has to
// spin clockwise (negative speed) to roll toward +X.
package engine
