package gpu

// Shader sources for the two portable pipelines (spec §6, "Shader
// semantics (portable)"). Both are plain WGSL so they can be
// cross-compiled with github.com/gogpu/naga to whatever the concrete
// Device implementation's native API wants (SPIR-V for Vulkan, MSL for
// Metal, DXIL/HLSL for D3D12), mirroring the teacher's own
// internal/native/shader_helper.go compilation step.

const colorVertexShader = `
struct Uniforms {
	projection: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexIn {
	@location(0) position: vec2<f32>,
	@location(1) color: vec4<f32>,
};
struct VertexOut {
	@builtin(position) clip_position: vec4<f32>,
	@location(0) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexIn) -> VertexOut {
	var out: VertexOut;
	out.clip_position = u.projection * vec4<f32>(in.position, 0.0, 1.0);
	out.color = in.color;
	return out;
}
`

const colorFragmentShader = `
@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
	return color;
}
`

const textureVertexShader = `
struct Uniforms {
	projection: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexIn {
	@location(0) position: vec2<f32>,
	@location(1) uv: vec2<f32>,
};
struct VertexOut {
	@builtin(position) clip_position: vec4<f32>,
	@location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexIn) -> VertexOut {
	var out: VertexOut;
	out.clip_position = u.projection * vec4<f32>(in.position, 0.0, 1.0);
	out.uv = in.uv;
	return out;
}
`

const textureFragmentShader = `
@group(0) @binding(1) var t: texture_2d<f32>;
@group(0) @binding(2) var s: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
	return textureSample(t, s, uv);
}
`

// projectionMatrix builds the column-major, top-left-origin orthographic
// projection described by spec §4.10: all target pixels map to NDC with
// Y flipped.
func projectionMatrix(w, h float32) [16]float32 {
	var m [16]float32
	m[0] = 2 / w
	m[5] = -2 / h
	m[10] = -1
	m[12] = -1
	m[13] = 1
	m[15] = 1
	return m
}
