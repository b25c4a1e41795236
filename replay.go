package shaderspec

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
)

// textureSource answers descriptor lookups for one stage. The replay source
// reads the old snapshot; the live source reads the bound texture pool.
type textureSource interface {
	lookup(key TextureKey) (TextureSpec, bool)
}

// accessorCore answers the full StateAccessor contract from a set of state
// facts plus a texture source, mirroring every consumed fact into the fresh
// snapshot. ReplayAccessor and LiveAccessor differ only in how the core is
// seeded.
//
// Beyond the latched failure, the core has no mutable state of its own; all
// recording goes through the fresh snapshot, which handles per-stage
// concurrency. The failure latch is written only by the stage's own
// translator call, so it needs no synchronization.
type accessorCore struct {
	stage    ShaderStage
	code     *CodeReader
	cbuf1    []byte
	graphics GraphicsState
	compute  ComputeState
	tf       []TransformFeedbackSpec
	cbufUse  uint32
	textures textureSource
	fresh    *SpecializationState
	log      *slog.Logger

	// alphaTestEmulation is set when the target backend has no
	// fixed-function alpha test and the shader must emulate it.
	alphaTestEmulation bool

	// failure is the first fatal miss this accessor hit. Texture lookups
	// have no error return, so a miss is latched here and checked through
	// Err after the stage's translation finishes.
	failure error
}

// fail latches the first fatal error. Later results are meaningless once
// set; the cache-load attempt is already lost.
func (a *accessorCore) fail(err error) {
	if a.failure == nil {
		a.failure = err
	}
}

func (a *accessorCore) Err() error {
	return a.failure
}

func (a *accessorCore) Code(address uint64, minimumSize int) []uint32 {
	return a.code.Words(address, minimumSize)
}

func (a *accessorCore) ConstantBuffer1Read(offset int) (uint32, error) {
	word, err := readCbufWord(a.cbuf1, offset)
	if err != nil {
		return 0, fmt.Errorf("constant buffer 1 read at offset %d of %d bytes: %w",
			offset, len(a.cbuf1), err)
	}
	return word, nil
}

func (a *accessorCore) Log(message string) {
	a.log.Debug("shader translator", slog.String("stage", a.stage.String()),
		slog.String("message", message))
}

func (a *accessorCore) QueryAlphaTestCompare() gputypes.CompareFunction {
	if !a.alphaTestEmulation || !a.graphics.AlphaTestEnable {
		return gputypes.CompareFunctionAlways
	}
	return a.graphics.AlphaTestCompare.CompareFunction()
}

func (a *accessorCore) QueryAlphaTestReference() float32 {
	return a.graphics.AlphaTestReference
}

func (a *accessorCore) QueryAlphaToCoverageEnable() bool {
	return a.graphics.AlphaToCoverageEnable
}

func (a *accessorCore) QueryAlphaToCoverageDitherEnable() bool {
	return a.graphics.AlphaToCoverageDitherEnable
}

func (a *accessorCore) QueryAttributeType(location int) AttributeType {
	return a.graphics.AttributeTypes[location]
}

func (a *accessorCore) QueryComputeLocalSize() (x, y, z uint32) {
	return a.compute.LocalSizeX, a.compute.LocalSizeY, a.compute.LocalSizeZ
}

func (a *accessorCore) QueryComputeLocalMemorySize() uint32 {
	return a.compute.LocalMemorySize
}

func (a *accessorCore) QueryComputeSharedMemorySize() uint32 {
	return a.compute.SharedMemorySize
}

func (a *accessorCore) QueryConstantBufferUse() uint32 {
	// Direct carry-forward: the mask is copied verbatim, not derived.
	a.fresh.RecordConstantBufferUse(a.stage, a.cbufUse)
	return a.cbufUse
}

func (a *accessorCore) QueryDepthMode() DepthMode {
	return a.graphics.DepthMode
}

func (a *accessorCore) QueryEarlyZForce() bool {
	return a.graphics.EarlyZForce
}

func (a *accessorCore) QueryHasConstantBufferDrawParameters() bool {
	return a.graphics.HasConstantBufferDrawParameters
}

func (a *accessorCore) QueryPointSize() float32 {
	return a.graphics.PointSize
}

func (a *accessorCore) QueryProgramPointSize() bool {
	return a.graphics.ProgramPointSizeEnable
}

func (a *accessorCore) QueryPrimitiveTopology() InputTopology {
	// Presence alone matters: if retranslation never asks, the fingerprint
	// is not keyed on topology.
	a.fresh.RecordTopologyQueried()
	return a.graphics.Topology.InputTopology(a.graphics.TessMode)
}

func (a *accessorCore) QueryTessPatchType() TessPatchType {
	return a.graphics.TessMode.Patch()
}

func (a *accessorCore) QueryTessSpacing() TessSpacing {
	return a.graphics.TessMode.Spacing()
}

func (a *accessorCore) QueryTessCw() bool {
	return a.graphics.TessMode.Cw()
}

func (a *accessorCore) QueryViewportTransformDisable() bool {
	return a.graphics.ViewportTransformDisable
}

func (a *accessorCore) QueryTransformFeedbackEnabled() bool {
	return len(a.tf) > 0
}

func (a *accessorCore) QueryTransformFeedbackVaryingLocations(buffer int) []byte {
	return a.tf[buffer].VaryingLocations
}

func (a *accessorCore) QueryTransformFeedbackStride(buffer int) uint32 {
	return a.tf[buffer].Stride
}

func (a *accessorCore) QueryTextureFormat(handle uint32, cbufSlot int32) gputypes.TextureFormat {
	key := TextureKey{Stage: a.stage, Handle: handle, CbufSlot: cbufSlot}
	spec, ok := a.textures.lookup(key)
	if !ok {
		a.missTexture("texture format", key)
		return gputypes.TextureFormatRGBA8Unorm
	}
	a.fresh.RecordTextureFormat(key, spec.Format, spec.FormatSrgb)
	return spec.Format.Resolve(spec.FormatSrgb)
}

func (a *accessorCore) QuerySamplerType(handle uint32, cbufSlot int32) SamplerType {
	key := TextureKey{Stage: a.stage, Handle: handle, CbufSlot: cbufSlot}
	spec, ok := a.textures.lookup(key)
	if !ok {
		a.missTexture("sampler type", key)
		return Sampler2D
	}
	a.fresh.RecordTextureTarget(key, spec.Target)
	return spec.Target.SamplerType()
}

func (a *accessorCore) QueryTextureCoordNormalized(handle uint32, cbufSlot int32) bool {
	key := TextureKey{Stage: a.stage, Handle: handle, CbufSlot: cbufSlot}
	spec, ok := a.textures.lookup(key)
	if !ok {
		a.missTexture("coordinate normalization", key)
		return true
	}
	a.fresh.RecordTextureCoordNormalized(key, spec.CoordNormalized)
	return spec.CoordNormalized
}

func (a *accessorCore) RegisterTexture(handle uint32, cbufSlot int32) error {
	key := TextureKey{Stage: a.stage, Handle: handle, CbufSlot: cbufSlot}
	spec, ok := a.textures.lookup(key)
	if !ok {
		return fmt.Errorf("register texture stage=%s handle=%#x cbufSlot=%d: %w",
			key.Stage, key.Handle, key.CbufSlot, ErrMissingTextureDescriptor)
	}
	a.fresh.RecordTexture(key, spec)
	return nil
}

// missTexture handles a lookup on a key the source never captured: a wrong
// answer here would render incorrectly, so the miss is fatal to the whole
// cache-load attempt. The query still returns a placeholder value because
// the contract has no error channel for lookups, but the latched failure
// guarantees the placeholder is never compiled in.
func (a *accessorCore) missTexture(what string, key TextureKey) {
	a.log.Warn("texture descriptor lookup missed, failing load",
		slog.String("query", what),
		slog.String("stage", key.Stage.String()),
		slog.Uint64("handle", uint64(key.Handle)),
		slog.Int64("cbufSlot", int64(key.CbufSlot)))
	a.fail(fmt.Errorf("query %s stage=%s handle=%#x cbufSlot=%d: %w",
		what, key.Stage, key.Handle, key.CbufSlot, ErrMissingTextureDescriptor))
}

// snapshotTextures adapts a read-only SpecializationState as a texture
// source.
type snapshotTextures struct {
	state *SpecializationState
}

func (s snapshotTextures) lookup(key TextureKey) (TextureSpec, bool) {
	return s.state.Texture(key)
}

// ReplayOptions configures a ReplayAccessor.
type ReplayOptions struct {
	// Stage is the shader stage this accessor serves.
	Stage ShaderStage

	// Code is the raw guest shader code for the stage.
	Code []byte

	// ConstantBuffer1 is the captured constant buffer 1 data for the stage.
	ConstantBuffer1 []byte

	// Old is the deserialized snapshot the program was compiled against.
	// It is never mutated during replay.
	Old *SpecializationState

	// Fresh is the snapshot being rebuilt as the new fingerprint. It is
	// shared by all stage accessors of the same program.
	Fresh *SpecializationState

	// AlphaTestEmulation is the backend capability flag: true when alpha
	// testing must be emulated in the fragment shader.
	AlphaTestEmulation bool

	// Logger receives accessor diagnostics. Nil means silent.
	Logger *slog.Logger
}

// ReplayAccessor answers translation-time queries from a previously
// captured snapshot, so a disk-cached program can be revalidated exactly as
// if its state were still live. Every consumed fact is mirrored into the
// fresh snapshot.
//
// Thread Safety:
// One accessor serves one stage. Accessors for different stages of the same
// program may run concurrently; they share the old snapshot read-only and
// record into the fresh snapshot through its per-stage discipline.
type ReplayAccessor struct {
	accessorCore
}

var _ StateAccessor = (*ReplayAccessor)(nil)

// NewReplayAccessor creates a replay accessor for one stage.
func NewReplayAccessor(opts ReplayOptions) *ReplayAccessor {
	return &ReplayAccessor{accessorCore{
		stage:              opts.Stage,
		code:               NewCodeReader(opts.Code),
		cbuf1:              opts.ConstantBuffer1,
		graphics:           opts.Old.Graphics,
		compute:            opts.Old.Compute,
		tf:                 opts.Old.TransformFeedback,
		cbufUse:            opts.Old.ConstantBufferUse(opts.Stage),
		textures:           snapshotTextures{state: opts.Old},
		fresh:              opts.Fresh,
		log:                orNopLogger(opts.Logger),
		alphaTestEmulation: opts.AlphaTestEmulation,
	}}
}
