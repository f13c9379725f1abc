// Package common holds constants shared by the sandbox and its tools.
package common

const (
	// BaseWidth and BaseHeight are the logical screen size in pixels.
	BaseWidth  = 640
	BaseHeight = 360

	// TPS is the fixed logical tick rate.
	TPS = 60

	DefaultLevel = "sandbox.json"
)
