package shaderspec

import (
	"sync"
	"sync/atomic"
)

// GraphicsState holds every drawing-pipeline fact that can influence shader
// translation. It is captured from channel state at compile time and stored
// verbatim in the snapshot.
type GraphicsState struct {
	// EarlyZForce forces early depth testing regardless of shader writes.
	EarlyZForce bool

	// Topology is the programmed primitive topology.
	Topology GuestTopology

	// TessMode is the packed tessellation configuration.
	TessMode TessellationMode

	// AlphaToCoverageEnable enables alpha-to-coverage.
	AlphaToCoverageEnable bool

	// AlphaToCoverageDitherEnable enables dithering of the coverage mask.
	AlphaToCoverageDitherEnable bool

	// ViewportTransformDisable bypasses the viewport transform.
	ViewportTransformDisable bool

	// DepthMode is the depth-range convention.
	DepthMode DepthMode

	// ProgramPointSizeEnable lets the shader drive point size.
	ProgramPointSizeEnable bool

	// PointSize is the fixed-function point size.
	PointSize float32

	// AlphaTestEnable enables fixed-function alpha testing.
	AlphaTestEnable bool

	// AlphaTestCompare is the raw alpha-test comparison code.
	AlphaTestCompare CompareCode

	// AlphaTestReference is the alpha-test reference value.
	AlphaTestReference float32

	// AttributeTypes is the per-location vertex attribute interpretation.
	AttributeTypes [MaxVertexAttributes]AttributeType

	// HasConstantBufferDrawParameters indicates draw parameters are passed
	// through a constant buffer rather than built-in variables.
	HasConstantBufferDrawParameters bool
}

// ComputeState holds the dispatch facts that influence compute shader
// translation.
type ComputeState struct {
	// LocalSizeX, LocalSizeY, LocalSizeZ are the workgroup dimensions.
	LocalSizeX uint32
	LocalSizeY uint32
	LocalSizeZ uint32

	// LocalMemorySize is the per-invocation local memory size in bytes.
	LocalMemorySize uint32

	// SharedMemorySize is the per-workgroup shared memory size in bytes.
	SharedMemorySize uint32
}

// TransformFeedbackSpec describes the layout of one transform feedback
// output buffer.
type TransformFeedbackSpec struct {
	// VaryingLocations is the ordered byte sequence of captured varying
	// locations for this buffer.
	VaryingLocations []byte

	// Stride is the buffer stride in bytes.
	Stride uint32
}

// TextureKey identifies one texture binding: which stage sampled it, the
// handle word from the shader, and the constant buffer slot the handle was
// read from. The three parts form a single comparable key so that presence
// in the snapshot is one well-defined check.
type TextureKey struct {
	Stage ShaderStage

	// Handle is the texture handle word.
	Handle uint32

	// CbufSlot is the constant buffer slot the handle came from, or -1 for
	// the default texture buffer.
	CbufSlot int32
}

// TextureSpec is the descriptor tuple captured for one texture key.
type TextureSpec struct {
	// Format is the packed format code from the descriptor.
	Format FormatCode

	// FormatSrgb selects the sRGB variant of Format.
	FormatSrgb bool

	// Target is the texture dimensionality/layout.
	Target TextureTarget

	// CoordNormalized reports whether sampling coordinates are normalized.
	CoordNormalized bool
}

// SpecializationState is the snapshot of every GPU-state fact a shader
// program's translation depended on.
//
// It plays two roles. As the old snapshot of a replay it is a read-only
// source of truth. As the fresh snapshot (live capture, or the rebuilt
// fingerprint during replay) it accumulates facts monotonically through the
// Record methods; nothing is ever removed.
//
// Thread Safety:
// A read-only snapshot is safe to share without synchronization. A snapshot
// being recorded accepts one writer per stage concurrently: the usage-mask
// array is naturally partitioned by stage index, the texture map is guarded
// by an internal mutex, and the program-wide topology flag is atomic.
type SpecializationState struct {
	// Graphics is the captured pipeline state. Unused for compute programs.
	Graphics GraphicsState

	// Compute is the captured dispatch state. Unused for graphics programs.
	Compute ComputeState

	// TransformFeedback holds one spec per output buffer when transform
	// feedback is active, nil when it is not.
	TransformFeedback []TransformFeedbackSpec

	// constantBufferUse is the per-stage mask of bound constant buffer
	// slots. Each stage's accessor writes only its own element.
	constantBufferUse [StageCount]uint32

	// mu guards textures.
	mu sync.RWMutex

	// textures maps each consumed texture key to its descriptor tuple.
	textures map[TextureKey]TextureSpec

	// topologyQueried is set when any stage consults the input topology.
	// Topology is program-wide, so the flag is shared and atomic.
	topologyQueried atomic.Bool
}

// NewGraphicsSpecState creates a snapshot seeded with graphics pipeline
// state and transform feedback layout. A nil tf means transform feedback is
// disabled.
func NewGraphicsSpecState(gfx GraphicsState, tf []TransformFeedbackSpec) *SpecializationState {
	return &SpecializationState{
		Graphics:          gfx,
		TransformFeedback: tf,
		textures:          make(map[TextureKey]TextureSpec),
	}
}

// NewComputeSpecState creates a snapshot seeded with compute dispatch state.
func NewComputeSpecState(cs ComputeState) *SpecializationState {
	return &SpecializationState{
		Compute:  cs,
		textures: make(map[TextureKey]TextureSpec),
	}
}

// CloneForRecord creates the fresh snapshot for a replay: the same pipeline,
// dispatch and transform feedback facts, with empty recorded state. The
// recorded parts are rebuilt from the queries the translator actually
// issues.
func (s *SpecializationState) CloneForRecord() *SpecializationState {
	return &SpecializationState{
		Graphics:          s.Graphics,
		Compute:           s.Compute,
		TransformFeedback: s.TransformFeedback,
		textures:          make(map[TextureKey]TextureSpec),
	}
}

// Texture returns the descriptor tuple for key, and whether the key was
// ever captured. Absence is meaningful: a key the snapshot never saw cannot
// be answered and fails registration.
func (s *SpecializationState) Texture(key TextureKey) (TextureSpec, bool) {
	s.mu.RLock()
	spec, ok := s.textures[key]
	s.mu.RUnlock()
	return spec, ok
}

// TextureCount returns the number of recorded texture keys.
func (s *SpecializationState) TextureCount() int {
	s.mu.RLock()
	n := len(s.textures)
	s.mu.RUnlock()
	return n
}

// ConstantBufferUse returns the captured usage mask for stage.
func (s *SpecializationState) ConstantBufferUse(stage ShaderStage) uint32 {
	return s.constantBufferUse[stage]
}

// TransformFeedbackEnabled reports whether transform feedback was active,
// which is exactly the presence of buffer specs.
func (s *SpecializationState) TransformFeedbackEnabled() bool {
	return len(s.TransformFeedback) > 0
}

// TopologyQueried reports whether any stage consulted the input topology.
// Presence alone matters: a program that never reads topology need not be
// fingerprinted on it.
func (s *SpecializationState) TopologyQueried() bool {
	return s.topologyQueried.Load()
}

// RecordConstantBufferUse records the usage mask for stage. Safe to call
// concurrently from different stages' accessors.
func (s *SpecializationState) RecordConstantBufferUse(stage ShaderStage, mask uint32) {
	s.constantBufferUse[stage] = mask
}

// RecordTopologyQueried records that the input topology was consulted.
func (s *SpecializationState) RecordTopologyQueried() {
	s.topologyQueried.Store(true)
}

// RecordTexture records the full descriptor tuple for key as one atomic
// registration. The snapshot never holds a half-registered texture through
// this path.
func (s *SpecializationState) RecordTexture(key TextureKey, spec TextureSpec) {
	s.mu.Lock()
	s.textures[key] = spec
	s.mu.Unlock()
}

// RecordTextureFormat records only the format fields for key, leaving any
// previously recorded fields of the entry intact.
func (s *SpecializationState) RecordTextureFormat(key TextureKey, format FormatCode, srgb bool) {
	s.mu.Lock()
	entry := s.textures[key]
	entry.Format = format
	entry.FormatSrgb = srgb
	s.textures[key] = entry
	s.mu.Unlock()
}

// RecordTextureTarget records only the target field for key.
func (s *SpecializationState) RecordTextureTarget(key TextureKey, target TextureTarget) {
	s.mu.Lock()
	entry := s.textures[key]
	entry.Target = target
	s.textures[key] = entry
	s.mu.Unlock()
}

// RecordTextureCoordNormalized records only the coordinate flag for key.
func (s *SpecializationState) RecordTextureCoordNormalized(key TextureKey, normalized bool) {
	s.mu.Lock()
	entry := s.textures[key]
	entry.CoordNormalized = normalized
	s.textures[key] = entry
	s.mu.Unlock()
}
