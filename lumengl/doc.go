// Package lumengl provides a minimal, predictable software 3D engine for the
// lumen hero scene.
//
// It is intended for decorative real-time visuals: a handful of meshes, flat
// shading with one ambient and one point light, and an interactive view driven
// by the caller. It is not a game engine and does not provide a GPU
// abstraction.
//
// Pipeline (fixed):
//
//	Scene → Transform → Shade → Projection → Clipping → Rasterization → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target. The
// hot path avoids allocations by reusing per-frame scratch buffers, and the
// triangle pass can be spread across worker goroutines over disjoint row bands.
//
// All resources that hold buffers (geometries, targets) expose an explicit
// Release and report a released state, so callers can verify scoped teardown.
package lumengl
