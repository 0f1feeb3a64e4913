// Package roulette generates spirograph curves: hypotrochoids and
// epitrochoids traced by a pen on a circle rolling inside or outside a fixed
// circle.
//
// A layer is described by [CurveParams]. [ResolveRotations] works out how many
// revolutions the layer needs to close, [Generate] yields its points lazily,
// and [Compose] stacks several layers so that each one rolls along the trace
// of the previous. [Rosette] is a fixed two-frequency curve used for the
// static SVG export.
//
// Everything in this package is pure computation over values; nothing is
// cached between calls. Diagnostics go to the logger set with [SetLogger],
// which is silent by default.
package roulette
