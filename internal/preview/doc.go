// Package preview simulates how a stencil looks once printed on label stock.
//
// Render takes a finished stencil bitmap and produces a fixed-size RGB image:
// the stencil is downsampled with a slight bleed ratio, re-thresholded onto the
// substrate gray, fitted to the label width and centered vertically. When the
// top margin allows it the pickup number is printed in the corner, and both
// side edges are tinted to flag the zone where print registration drifts.
//
// The output is always exactly LabelSpec.Width x LabelSpec.Height pixels.
package preview
