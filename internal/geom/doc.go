// Package geom holds the 3D geometry the rope renderer needs on top of
// gonum's r3: finite-point bounds with padding and a fixed-angle camera
// projecting world points onto a 2D figure.
package geom
