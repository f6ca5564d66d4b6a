// Package imaging is the file side of the stencil server: it decodes source
// photos, writes and re-reads stencil PNGs, and checks whether a file is ready
// to upload.
//
// The stencil core in package stencil never touches the filesystem. This
// package turns paths into image.Image values for it and turns its bitmaps
// back into files or inline base64 payloads.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and can be called concurrently on different images.
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF, BMP and TIFF, detected from file contents.
// Encoding: PNG only, since stencils must survive a lossless round trip.
//
// # Error Handling
//
// Functions return errors for missing or undecodable files and for encoding
// or write failures. Validation problems with an otherwise readable stencil
// are reported in ValidationResult.Reasons, not as errors.
package imaging
