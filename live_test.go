package shaderspec

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// mockTexturePool is a TextureDescriptorSource backed by a plain map,
// standing in for the bound texture pool.
type mockTexturePool map[[2]int64]TextureSpec

func (p mockTexturePool) TextureSpec(handle uint32, cbufSlot int32) (TextureSpec, bool) {
	spec, ok := p[[2]int64{int64(handle), int64(cbufSlot)}]
	return spec, ok
}

func mockChannelState() ChannelState {
	state := ChannelState{
		Graphics: GraphicsState{
			Topology:         TopologyPoints,
			AlphaTestEnable:  true,
			AlphaTestCompare: CompareCodeLessOrEqual,
		},
	}
	state.ConstantBufferUse[StageFragment] = 0x21
	return state
}

func TestLiveAccessorCapturesConsumedFacts(t *testing.T) {
	pool := mockTexturePool{
		{7, 2}: {Format: FormatCodeBGRA8, FormatSrgb: true, Target: TargetCubeArray, CoordNormalized: true},
	}
	state := mockChannelState()
	capture := CaptureProgram(state, false)

	acc := NewLiveAccessor(LiveOptions{
		Stage:              StageFragment,
		State:              state,
		Textures:           pool,
		Capture:            capture,
		AlphaTestEmulation: true,
	})

	if got := acc.QueryTextureFormat(7, 2); got != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("QueryTextureFormat = %v, want BGRA8UnormSrgb", got)
	}
	if got := acc.QuerySamplerType(7, 2); got != SamplerCube|SamplerArray {
		t.Errorf("QuerySamplerType = %#x, want cube array", uint8(got))
	}
	if err := acc.RegisterTexture(7, 2); err != nil {
		t.Fatalf("RegisterTexture: %v", err)
	}
	if got := acc.QueryConstantBufferUse(); got != 0x21 {
		t.Errorf("QueryConstantBufferUse = %#x, want 0x21", got)
	}
	if got := acc.QueryAlphaTestCompare(); got != gputypes.CompareFunctionLessEqual {
		t.Errorf("QueryAlphaTestCompare = %v, want LessEqual", got)
	}

	// The capture now answers the same queries on replay.
	key := TextureKey{Stage: StageFragment, Handle: 7, CbufSlot: 2}
	got, ok := capture.Texture(key)
	if !ok {
		t.Fatal("capture has no entry for the registered texture")
	}
	want, _ := pool.TextureSpec(7, 2)
	if got != want {
		t.Errorf("captured entry = %+v, want %+v", got, want)
	}
	if capture.ConstantBufferUse(StageFragment) != 0x21 {
		t.Error("usage mask not captured")
	}
}

func TestLiveAccessorMissingDescriptor(t *testing.T) {
	state := mockChannelState()
	capture := CaptureProgram(state, false)
	acc := NewLiveAccessor(LiveOptions{
		Stage:    StageFragment,
		State:    state,
		Textures: mockTexturePool{},
		Capture:  capture,
	})

	if err := acc.RegisterTexture(1, 0); !errors.Is(err, ErrMissingTextureDescriptor) {
		t.Fatalf("err = %v, want ErrMissingTextureDescriptor", err)
	}
	if capture.TextureCount() != 0 {
		t.Error("failed registration must not reach the capture")
	}

	// A plain lookup miss fails the compilation through the latch, so the
	// capture can never hold made-up descriptor facts.
	acc.QueryTextureFormat(1, 0)
	if !errors.Is(acc.Err(), ErrMissingTextureDescriptor) {
		t.Error("pool miss not latched")
	}
}

func TestCaptureProgramCompute(t *testing.T) {
	state := ChannelState{Compute: ComputeState{LocalSizeX: 64, LocalSizeY: 1, LocalSizeZ: 1}}
	capture := CaptureProgram(state, true)

	acc := NewLiveAccessor(LiveOptions{
		Stage:    StageCompute,
		State:    state,
		Textures: mockTexturePool{},
		Capture:  capture,
	})

	x, y, z := acc.QueryComputeLocalSize()
	if x != 64 || y != 1 || z != 1 {
		t.Errorf("QueryComputeLocalSize = %d,%d,%d, want 64,1,1", x, y, z)
	}
	if capture.Compute.LocalSizeX != 64 {
		t.Error("compute state not captured")
	}
}

// TestLiveThenReplayRoundTrip compiles "live", then replays against the
// capture and checks the answers match and the rebuilt fingerprint equals
// the consumed subset.
func TestLiveThenReplayRoundTrip(t *testing.T) {
	pool := mockTexturePool{
		{3, 1}: {Format: FormatCodeRGBA8, Target: Target2D, CoordNormalized: true},
	}
	state := mockChannelState()
	capture := CaptureProgram(state, false)

	live := NewLiveAccessor(LiveOptions{
		Stage:              StageFragment,
		State:              state,
		Textures:           pool,
		Capture:            capture,
		AlphaTestEmulation: true,
	})
	if err := live.RegisterTexture(3, 1); err != nil {
		t.Fatalf("live RegisterTexture: %v", err)
	}
	liveFormat := live.QueryTextureFormat(3, 1)
	liveUse := live.QueryConstantBufferUse()
	liveCompare := live.QueryAlphaTestCompare()

	fresh := capture.CloneForRecord()
	replay := NewReplayAccessor(ReplayOptions{
		Stage:              StageFragment,
		Old:                capture,
		Fresh:              fresh,
		AlphaTestEmulation: true,
	})
	if err := replay.RegisterTexture(3, 1); err != nil {
		t.Fatalf("replay RegisterTexture: %v", err)
	}
	if got := replay.QueryTextureFormat(3, 1); got != liveFormat {
		t.Errorf("replay format %v differs from live %v", got, liveFormat)
	}
	if got := replay.QueryConstantBufferUse(); got != liveUse {
		t.Errorf("replay usage %#x differs from live %#x", got, liveUse)
	}
	if got := replay.QueryAlphaTestCompare(); got != liveCompare {
		t.Errorf("replay compare %v differs from live %v", got, liveCompare)
	}

	key := TextureKey{Stage: StageFragment, Handle: 3, CbufSlot: 1}
	capturedSpec, _ := capture.Texture(key)
	rebuiltSpec, ok := fresh.Texture(key)
	if !ok || rebuiltSpec != capturedSpec {
		t.Errorf("rebuilt fingerprint entry = %+v, want %+v", rebuiltSpec, capturedSpec)
	}
}
