// Package shade implements the brush shading stages of a 2D drawing
// application's GPU rendering backend.
//
// # Overview
//
// A host rendering engine (the canvas) flattens brush strokes into
// triangle lists and hands them to the GPU together with a transform
// matrix and two optional auxiliary mask textures: an eraser texture
// marking regions the user has rubbed out, and a clip mask restricting
// rendering to a region. This package defines the per-vertex and
// per-fragment math of that hand-off:
//
//   - the vertex stage: packed color normalization, the 4x4 transform
//     to clip space, and the paper-space coordinate used to align mask
//     lookups with the canvas surface
//   - four fragment stage variants: plain color, eraser-masked,
//     clip-masked, and eraser-then-clip combined
//
// The root package is a pure-Go reference implementation of exactly
// that math, useful for testing and software fallbacks. The gpu
// subpackage carries the same stages as an embedded WGSL shader module
// and builds the matching gogpu/wgpu render pipelines.
//
// # Paper coordinates
//
// Mask textures are aligned to the output surface, not to the brush
// geometry. The vertex stage therefore derives a paper-space
// coordinate from the clip-space position: clip [-1,1]^2 maps to
// paper [0,1]^2 with a vertical flip, so that paper (0,0) is the top
// left of the canvas the way texture sampling expects.
//
// # Scope
//
// Render pass orchestration, frame lifecycle, mask content generation
// and multisample resolve configuration belong to the host engine and
// are not part of this module.
package shade
