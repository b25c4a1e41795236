package shaderspec

import "github.com/gogpu/gputypes"

// ShaderStage identifies one shader unit within a program. Stages index the
// per-stage arrays of a SpecializationState. A program is either graphics or
// compute, so the compute stage shares index 0 with nothing else.
type ShaderStage uint8

const (
	// StageCompute is the compute shader of a dispatch program.
	StageCompute ShaderStage = iota

	// StageVertex is the vertex shader.
	StageVertex

	// StageTessControl is the tessellation control shader.
	StageTessControl

	// StageTessEval is the tessellation evaluation shader.
	StageTessEval

	// StageGeometry is the geometry shader.
	StageGeometry

	// StageFragment is the fragment shader.
	StageFragment

	// StageCount is the number of stage slots in per-stage arrays.
	StageCount = 6
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageCompute:
		return "Compute"
	case StageVertex:
		return "Vertex"
	case StageTessControl:
		return "TessControl"
	case StageTessEval:
		return "TessEval"
	case StageGeometry:
		return "Geometry"
	case StageFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// MaxVertexAttributes is the number of vertex attribute locations tracked in
// GraphicsState.
const MaxVertexAttributes = 32

// AttributeType is the numeric interpretation of one vertex attribute, as
// configured in the vertex array state rather than the shader.
type AttributeType uint8

const (
	// AttributeFloat reads the attribute as floating point.
	AttributeFloat AttributeType = iota

	// AttributeSint reads the attribute as signed integer.
	AttributeSint

	// AttributeUint reads the attribute as unsigned integer.
	AttributeUint

	// AttributeSscaled reads signed integer data converted to float.
	AttributeSscaled

	// AttributeUscaled reads unsigned integer data converted to float.
	AttributeUscaled
)

// GuestTopology is the primitive topology exactly as the guest programmed
// it, before any host-facing simplification.
type GuestTopology uint8

const (
	TopologyPoints GuestTopology = iota
	TopologyLines
	TopologyLineLoop
	TopologyLineStrip
	TopologyTriangles
	TopologyTriangleStrip
	TopologyTriangleFan
	TopologyQuads
	TopologyQuadStrip
	TopologyPolygon
	TopologyLinesAdjacency
	TopologyLineStripAdjacency
	TopologyTrianglesAdjacency
	TopologyTriangleStripAdjacency
	TopologyPatches
)

// InputTopology is the translator-facing input primitive classification.
// Strips, loops and fans collapse onto their list form; quads and polygons
// are decomposed into triangles before they reach the shader.
type InputTopology uint8

const (
	InputTopologyPoints InputTopology = iota
	InputTopologyLines
	InputTopologyLinesAdjacency
	InputTopologyTriangles
	InputTopologyTrianglesAdjacency
)

// String returns the input topology name.
func (t InputTopology) String() string {
	switch t {
	case InputTopologyPoints:
		return "Points"
	case InputTopologyLines:
		return "Lines"
	case InputTopologyLinesAdjacency:
		return "LinesAdjacency"
	case InputTopologyTriangles:
		return "Triangles"
	case InputTopologyTrianglesAdjacency:
		return "TrianglesAdjacency"
	default:
		return "Unknown"
	}
}

// InputTopology converts the guest topology to the translator-facing input
// topology. Patch primitives depend on the tessellation mode: isoline
// patches enter the pipeline as lines, every other patch type as triangles.
// The conversion is deterministic, the same (topology, mode) pair always
// yields the same result.
func (t GuestTopology) InputTopology(tess TessellationMode) InputTopology {
	switch t {
	case TopologyPoints:
		return InputTopologyPoints
	case TopologyLines, TopologyLineLoop, TopologyLineStrip:
		return InputTopologyLines
	case TopologyLinesAdjacency, TopologyLineStripAdjacency:
		return InputTopologyLinesAdjacency
	case TopologyTriangles, TopologyTriangleStrip, TopologyTriangleFan,
		TopologyQuads, TopologyQuadStrip, TopologyPolygon:
		return InputTopologyTriangles
	case TopologyTrianglesAdjacency, TopologyTriangleStripAdjacency:
		return InputTopologyTrianglesAdjacency
	case TopologyPatches:
		if tess.Patch() == TessPatchIsolines {
			return InputTopologyLines
		}
		return InputTopologyTriangles
	default:
		return InputTopologyPoints
	}
}

// TessPatchType is the tessellation patch domain.
type TessPatchType uint8

const (
	TessPatchIsolines TessPatchType = iota
	TessPatchTriangles
	TessPatchQuads
)

// TessSpacing is the tessellation edge spacing rule.
type TessSpacing uint8

const (
	TessSpacingEqual TessSpacing = iota
	TessSpacingFractionalOdd
	TessSpacingFractionalEven
)

// TessellationMode packs the tessellation configuration the way the guest
// stores it: bits 0-1 patch type, bits 2-3 spacing, bit 4 clockwise winding.
type TessellationMode uint32

// Patch unpacks the patch domain.
func (m TessellationMode) Patch() TessPatchType {
	return TessPatchType(m & 3)
}

// Spacing unpacks the edge spacing rule.
func (m TessellationMode) Spacing() TessSpacing {
	return TessSpacing((m >> 2) & 3)
}

// Cw unpacks the winding: true when generated primitives wind clockwise.
func (m TessellationMode) Cw() bool {
	return (m>>4)&1 != 0
}

// PackTessellationMode packs a tessellation configuration into its guest
// encoding. Used when capturing graphics state.
func PackTessellationMode(patch TessPatchType, spacing TessSpacing, cw bool) TessellationMode {
	m := TessellationMode(patch&3) | TessellationMode(spacing&3)<<2
	if cw {
		m |= 1 << 4
	}
	return m
}

// DepthMode is the depth-range convention the guest selected.
type DepthMode uint8

const (
	// DepthModeMinusOneToOne maps clip-space depth from [-1, 1].
	DepthModeMinusOneToOne DepthMode = iota

	// DepthModeZeroToOne maps clip-space depth from [0, 1].
	DepthModeZeroToOne
)

// CompareCode is a raw guest comparison code. Each relation exists twice:
// a native encoding in 1..8 and a GL-style encoding in 0x200..0x207,
// depending on which register interface the guest driver used.
type CompareCode uint32

const (
	CompareCodeNever          CompareCode = 1
	CompareCodeLess           CompareCode = 2
	CompareCodeEqual          CompareCode = 3
	CompareCodeLessOrEqual    CompareCode = 4
	CompareCodeGreater        CompareCode = 5
	CompareCodeNotEqual       CompareCode = 6
	CompareCodeGreaterOrEqual CompareCode = 7
	CompareCodeAlways         CompareCode = 8

	CompareCodeNeverGL          CompareCode = 0x200
	CompareCodeLessGL           CompareCode = 0x201
	CompareCodeEqualGL          CompareCode = 0x202
	CompareCodeLessOrEqualGL    CompareCode = 0x203
	CompareCodeGreaterGL        CompareCode = 0x204
	CompareCodeNotEqualGL       CompareCode = 0x205
	CompareCodeGreaterOrEqualGL CompareCode = 0x206
	CompareCodeAlwaysGL         CompareCode = 0x207
)

// CompareFunction maps the raw code onto the canonical comparison relation.
// The mapping is total: both stylistic variants of a relation land on the
// same gputypes value, and any code outside the defined set maps to
// CompareFunctionAlways, which a translator treats as "no test".
func (c CompareCode) CompareFunction() gputypes.CompareFunction {
	switch c {
	case CompareCodeNever, CompareCodeNeverGL:
		return gputypes.CompareFunctionNever
	case CompareCodeLess, CompareCodeLessGL:
		return gputypes.CompareFunctionLess
	case CompareCodeEqual, CompareCodeEqualGL:
		return gputypes.CompareFunctionEqual
	case CompareCodeLessOrEqual, CompareCodeLessOrEqualGL:
		return gputypes.CompareFunctionLessEqual
	case CompareCodeGreater, CompareCodeGreaterGL:
		return gputypes.CompareFunctionGreater
	case CompareCodeNotEqual, CompareCodeNotEqualGL:
		return gputypes.CompareFunctionNotEqual
	case CompareCodeGreaterOrEqual, CompareCodeGreaterOrEqualGL:
		return gputypes.CompareFunctionGreaterEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

// TextureTarget is the dimensionality/layout of a bound texture as recorded
// in its descriptor. The target is a property of the bound texture, not of
// the shader instruction that samples it.
type TextureTarget uint8

const (
	Target1D TextureTarget = iota
	Target2D
	Target3D
	TargetCube
	Target1DArray
	Target2DArray
	TargetCubeArray
	Target2DMultisample
	TargetBuffer
)

// SamplerType classifies a texture target the way the translator declares
// samplers: a base dimensionality plus orthogonal flags. The shadow flag is
// set by the translator for depth-compare accesses; target classification
// never produces it.
type SamplerType uint8

const (
	Sampler1D SamplerType = iota
	Sampler2D
	Sampler3D
	SamplerCube
	SamplerBuffer

	// SamplerArray marks an arrayed sampler.
	SamplerArray SamplerType = 1 << 4

	// SamplerMultisample marks a multisampled sampler.
	SamplerMultisample SamplerType = 1 << 5

	// SamplerShadow marks a depth-compare sampler.
	SamplerShadow SamplerType = 1 << 6

	samplerBaseMask SamplerType = 0x0f
)

// Base returns the sampler dimensionality with all flags stripped.
func (s SamplerType) Base() SamplerType { return s & samplerBaseMask }

// IsArray reports whether the sampler is arrayed.
func (s SamplerType) IsArray() bool { return s&SamplerArray != 0 }

// IsMultisample reports whether the sampler is multisampled.
func (s SamplerType) IsMultisample() bool { return s&SamplerMultisample != 0 }

// ViewDimension resolves the WebGPU binding dimension for this sampler.
// WebGPU has no 1D-array or buffer texture views, so arrayed 1D samplers
// bind as 2D arrays and buffer samplers as 1D.
func (s SamplerType) ViewDimension() gputypes.TextureViewDimension {
	switch s.Base() {
	case Sampler1D:
		if s.IsArray() {
			return gputypes.TextureViewDimension2DArray
		}
		return gputypes.TextureViewDimension1D
	case Sampler3D:
		return gputypes.TextureViewDimension3D
	case SamplerCube:
		if s.IsArray() {
			return gputypes.TextureViewDimensionCubeArray
		}
		return gputypes.TextureViewDimensionCube
	case SamplerBuffer:
		return gputypes.TextureViewDimension1D
	default:
		if s.IsArray() {
			return gputypes.TextureViewDimension2DArray
		}
		return gputypes.TextureViewDimension2D
	}
}

// SamplerType classifies the target into the translator's sampler taxonomy.
func (t TextureTarget) SamplerType() SamplerType {
	switch t {
	case Target1D:
		return Sampler1D
	case Target2D:
		return Sampler2D
	case Target3D:
		return Sampler3D
	case TargetCube:
		return SamplerCube
	case Target1DArray:
		return Sampler1D | SamplerArray
	case Target2DArray:
		return Sampler2D | SamplerArray
	case TargetCubeArray:
		return SamplerCube | SamplerArray
	case Target2DMultisample:
		return Sampler2D | SamplerMultisample
	case TargetBuffer:
		return SamplerBuffer
	default:
		return Sampler2D
	}
}
