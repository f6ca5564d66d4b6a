// Package stencil converts photos into one-bit stencils for a fixed printable canvas.
//
// The pipeline runs strictly forward:
//
//	source image -> Composite -> ToGray -> ApplyToneCurve -> Binarize -> ProtectEdges (optional)
//
// Process wires the stages together. Each stage is exported on its own so
// callers can inspect intermediate rasters.
//
// # Rasters
//
// Three raster flavours flow through the pipeline:
//   - RGB: *image.NRGBA, produced by Composite on a white canvas
//   - Grayscale: *image.Gray, produced by ToGray and ApplyToneCurve
//   - Binary: *Bitmap, whose pixels are only ever 0 (ink) or 255 (paper)
//
// Every stage allocates and returns a new raster; inputs are never modified.
//
// # Binarization Modes
//
// Mode is a closed set of variants dispatched by Binarize:
//   - OrderedDither: 8x8 Bayer threshold matrix
//   - ErrorDiffusion: Floyd-Steinberg, optionally serpentine
//   - HalftoneLattice: rotated lattice of circle, square or cross dots
//
// # Rounding
//
// Every float-to-level conversion rounds half away from zero (math.Round).
//
// # Thread Safety
//
// All functions are pure over their inputs and safe to call concurrently on
// independent rasters. Per-pixel stages split work across row bands internally;
// error diffusion always runs sequentially.
package stencil
