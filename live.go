package shaderspec

import "log/slog"

// ChannelState is the current GPU channel state a program is being compiled
// against. It deliberately uses the same shapes the snapshot stores, since
// the snapshot is a capture of exactly this.
type ChannelState struct {
	// Graphics is the current pipeline state.
	Graphics GraphicsState

	// Compute is the current dispatch state.
	Compute ComputeState

	// ConstantBufferUse is the per-stage mask of bound constant buffers.
	ConstantBufferUse [StageCount]uint32

	// TransformFeedback is the active output buffer layout, nil when
	// transform feedback is off.
	TransformFeedback []TransformFeedbackSpec
}

// TextureDescriptorSource answers descriptor lookups from the live texture
// pool. Pool memory management stays outside this package; the accessor
// only needs the descriptor tuple for a binding.
type TextureDescriptorSource interface {
	// TextureSpec returns the descriptor for the binding, and whether the
	// pool has one.
	TextureSpec(handle uint32, cbufSlot int32) (TextureSpec, bool)
}

// poolTextures adapts a TextureDescriptorSource as a texture source.
type poolTextures struct {
	pool TextureDescriptorSource
}

func (p poolTextures) lookup(key TextureKey) (TextureSpec, bool) {
	return p.pool.TextureSpec(key.Handle, key.CbufSlot)
}

// LiveOptions configures a LiveAccessor.
type LiveOptions struct {
	// Stage is the shader stage this accessor serves.
	Stage ShaderStage

	// Code is the raw guest shader code for the stage.
	Code []byte

	// ConstantBuffer1 is the current constant buffer 1 data for the stage.
	ConstantBuffer1 []byte

	// State is the current channel state.
	State ChannelState

	// Textures resolves descriptors from the bound texture pool.
	Textures TextureDescriptorSource

	// Capture is the snapshot being recorded for the program. After
	// compilation it becomes the fingerprint future cache loads replay
	// against.
	Capture *SpecializationState

	// AlphaTestEmulation is the backend capability flag: true when alpha
	// testing must be emulated in the fragment shader.
	AlphaTestEmulation bool

	// Logger receives accessor diagnostics. Nil means silent.
	Logger *slog.Logger
}

// LiveAccessor answers translation-time queries from current channel state
// during first compilation, recording every consumed fact into the capture
// snapshot. The capture is what a later disk-cache load replays against.
//
// A texture lookup the pool cannot answer fails the compilation the same
// way a replay miss fails a cache load: latched on the accessor and
// reported by Err. A capture holding made-up descriptor facts would poison
// every future replay against it.
//
// Thread Safety:
// Same model as ReplayAccessor: one accessor per stage, concurrent stages
// share the capture snapshot through its per-stage discipline.
type LiveAccessor struct {
	accessorCore
}

var _ StateAccessor = (*LiveAccessor)(nil)

// NewLiveAccessor creates a live accessor for one stage.
func NewLiveAccessor(opts LiveOptions) *LiveAccessor {
	return &LiveAccessor{accessorCore{
		stage:              opts.Stage,
		code:               NewCodeReader(opts.Code),
		cbuf1:              opts.ConstantBuffer1,
		graphics:           opts.State.Graphics,
		compute:            opts.State.Compute,
		tf:                 opts.State.TransformFeedback,
		cbufUse:            opts.State.ConstantBufferUse[opts.Stage],
		textures:           poolTextures{pool: opts.Textures},
		fresh:              opts.Capture,
		log:                orNopLogger(opts.Logger),
		alphaTestEmulation: opts.AlphaTestEmulation,
	}}
}

// CaptureProgram creates the capture snapshot for a program about to be
// compiled live: graphics programs capture pipeline state and transform
// feedback layout, compute programs capture dispatch state.
func CaptureProgram(state ChannelState, compute bool) *SpecializationState {
	if compute {
		return NewComputeSpecState(state.Compute)
	}
	return NewGraphicsSpecState(state.Graphics, state.TransformFeedback)
}
