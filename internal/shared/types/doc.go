// Package types provides shared value types for the SlimeOS kernel.
//
// Core Types:
//   - Color: RGB triple used by every drawing primitive
//   - Point, Rect: Screen geometry in pixels
//
// Example Usage:
//
//	bg := types.RGB(0, 0, 64)
//	sys.Clear(bg)
//	sys.DrawText("SLIME OS", 10, 10, 2, types.Yellow)
package types
