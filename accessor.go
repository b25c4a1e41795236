package shaderspec

import "github.com/gogpu/gputypes"

// StateAccessor is the query surface the shader translator calls for every
// translation decision that depends on GPU state rather than instruction
// words.
//
// Two implementations exist, selected by the caller: LiveAccessor answers
// from current channel state during first compilation, ReplayAccessor
// answers from a cached snapshot when revalidating a disk-cache entry. Both
// mirror every consumed fact into a fresh SpecializationState so the
// compiled program's fingerprint reflects its real dependencies.
//
// An accessor serves exactly one stage. RegisterTexture and
// ConstantBuffer1Read fail in their return value; the texture lookups have
// no error channel, so a lookup on a key the source never captured latches
// a failure that Err reports once the stage's translation finishes. Either
// way a missing fact is fatal to the cache-load attempt, never papered over
// with a default.
type StateAccessor interface {
	// Err returns the first fatal failure latched by a fact lookup, or nil.
	// Callers must check it after translation; a non-nil error invalidates
	// every answer the accessor gave.
	Err() error

	// Code returns the shader instruction words starting at the byte
	// address. minimumSize bytes are guaranteed available by the caller.
	Code(address uint64, minimumSize int) []uint32

	// ConstantBuffer1Read reads the word at offset from constant buffer 1
	// data. Fails with ErrInvalidCbufLength when the offset does not leave
	// four readable bytes.
	ConstantBuffer1Read(offset int) (uint32, error)

	// Log forwards a translator diagnostic to the accessor's sink.
	Log(message string)

	// QueryAlphaTestCompare returns the canonical alpha-test relation, or
	// CompareFunctionAlways when the backend does not emulate alpha testing
	// or the test is disabled.
	QueryAlphaTestCompare() gputypes.CompareFunction

	// QueryAlphaTestReference returns the alpha-test reference value.
	QueryAlphaTestReference() float32

	// QueryAlphaToCoverageEnable reports whether alpha-to-coverage is on.
	QueryAlphaToCoverageEnable() bool

	// QueryAlphaToCoverageDitherEnable reports whether the coverage mask
	// is dithered.
	QueryAlphaToCoverageDitherEnable() bool

	// QueryAttributeType returns the interpretation of the vertex attribute
	// at location.
	QueryAttributeType(location int) AttributeType

	// QueryComputeLocalSize returns the workgroup dimensions.
	QueryComputeLocalSize() (x, y, z uint32)

	// QueryComputeLocalMemorySize returns the local memory size in bytes.
	QueryComputeLocalMemorySize() uint32

	// QueryComputeSharedMemorySize returns the shared memory size in bytes.
	QueryComputeSharedMemorySize() uint32

	// QueryConstantBufferUse returns the stage's constant buffer usage mask
	// and carries it into the fresh snapshot unchanged.
	QueryConstantBufferUse() uint32

	// QueryDepthMode returns the depth-range convention.
	QueryDepthMode() DepthMode

	// QueryEarlyZForce reports whether early depth testing is forced.
	QueryEarlyZForce() bool

	// QueryHasConstantBufferDrawParameters reports whether draw parameters
	// arrive through a constant buffer.
	QueryHasConstantBufferDrawParameters() bool

	// QueryPointSize returns the fixed-function point size.
	QueryPointSize() float32

	// QueryProgramPointSize reports whether the shader drives point size.
	QueryProgramPointSize() bool

	// QueryPrimitiveTopology returns the translator-facing input topology
	// and marks the topology as consulted in the fresh snapshot.
	QueryPrimitiveTopology() InputTopology

	// QueryTessPatchType returns the tessellation patch domain.
	QueryTessPatchType() TessPatchType

	// QueryTessSpacing returns the tessellation spacing rule.
	QueryTessSpacing() TessSpacing

	// QueryTessCw reports whether tessellated primitives wind clockwise.
	QueryTessCw() bool

	// QueryViewportTransformDisable reports whether the viewport transform
	// is bypassed.
	QueryViewportTransformDisable() bool

	// QueryTransformFeedbackEnabled reports whether transform feedback is
	// active.
	QueryTransformFeedbackEnabled() bool

	// QueryTransformFeedbackVaryingLocations returns the captured varying
	// locations for the output buffer. The buffer index comes from shader
	// layout already validated by the caller.
	QueryTransformFeedbackVaryingLocations(buffer int) []byte

	// QueryTransformFeedbackStride returns the stride of the output buffer.
	QueryTransformFeedbackStride(buffer int) uint32

	// QueryTextureFormat resolves the canonical format of the texture bound
	// at (handle, cbufSlot) and records the consumed format fields. A key
	// the source never captured latches ErrMissingTextureDescriptor on the
	// accessor; the returned placeholder must not be compiled in.
	QueryTextureFormat(handle uint32, cbufSlot int32) gputypes.TextureFormat

	// QuerySamplerType classifies the texture bound at (handle, cbufSlot)
	// and records the consumed target. Misses latch a failure like
	// QueryTextureFormat.
	QuerySamplerType(handle uint32, cbufSlot int32) SamplerType

	// QueryTextureCoordNormalized reports whether the texture bound at
	// (handle, cbufSlot) uses normalized coordinates, recording the flag.
	// Misses latch a failure like QueryTextureFormat.
	QueryTextureCoordNormalized(handle uint32, cbufSlot int32) bool

	// RegisterTexture asserts that (handle, cbufSlot) names a real texture
	// and copies its full descriptor tuple into the fresh snapshot as one
	// atomic registration. Fails with ErrMissingTextureDescriptor when the
	// source has no descriptor for the key.
	RegisterTexture(handle uint32, cbufSlot int32) error
}
