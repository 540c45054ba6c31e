// Package gpu wires the brush shading stages into gogpu/wgpu render
// pipelines.
//
// The package embeds the WGSL shader module holding the vertex stage
// and all fragment variants, fixes the binding contract between the
// shader and the host engine (see the Group/Binding constants), and
// builds per-variant render pipelines plus the per-frame buffers and
// bind groups a draw call needs. The render pass itself is owned by
// the host: RecordDraws only records into an encoder the host provides.
package gpu
