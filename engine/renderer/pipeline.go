package renderer

import "github.com/cogentcore/webgpu/wgpu"

// placeholderWGSL is the degenerate placeholder shader. The vertex stage emits
// a zero-area off-screen position so no fragments are ever produced; all the
// render pass does is clear. The fragment stage exists only so the pipeline's
// color target can be pinned to the surface format.
const placeholderWGSL = `
@vertex
fn vs_placeholder() -> @builtin(position) vec4<f32> {
	return vec4<f32>(0.0, 0.0, 0.0, 0.0);
}

@fragment
fn fs_placeholder() -> @location(0) vec4<f32> {
	return vec4<f32>(0.0, 0.0, 0.0, 0.0);
}
`

// ensurePipeline returns the cached placeholder pipeline for the given surface
// format, creating it on first use. A surface reconfiguration can change the
// format, so a cached pipeline built against a stale format is rebuilt.
func (r *frameRenderer) ensurePipeline(format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	if r.pipeline != nil && r.pipelineFormat == format {
		return r.pipeline, nil
	}

	shaderModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Placeholder Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: placeholderWGSL,
		},
	})
	if err != nil {
		return nil, err
	}

	created, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Placeholder Render Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_placeholder",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_placeholder",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	if r.pipeline != nil {
		r.pipeline.Release()
	}
	r.pipeline = created
	r.pipelineFormat = format

	return created, nil
}
