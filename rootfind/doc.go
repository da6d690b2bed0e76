// Package rootfind solves the small nonlinear equations met while fitting a
// lattice: one scalar equation for a positive root, or a square system by
// Newton's method from a caller-supplied starting point.
//
// Derivatives are taken by central finite differences (gonum diff/fd), so
// callers only supply residual functions.
package rootfind
