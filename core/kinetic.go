package core

import "gonum.org/v1/gonum/spatial/r2"

// Kinetic is the translational state of a disk in canvas units
type Kinetic struct {
	// Pos is the center position
	Pos r2.Vec
	// Vel is velocity in units per second
	Vel r2.Vec
}
