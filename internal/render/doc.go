// Package render draws the rope diagnostics with gonum/plot.
//
// Every figure is built from fresh plot.Plot values and drawn onto its own
// canvas, so successive figures never share drawing state. Figures are
// written as PNG (at a configurable DPI) or SVG, chosen by file extension.
package render
