package shaderspec

import (
	"sync"
	"testing"
)

func testTextureSpec() TextureSpec {
	return TextureSpec{
		Format:          FormatCodeRGBA8,
		FormatSrgb:      false,
		Target:          Target2D,
		CoordNormalized: true,
	}
}

func TestRecordTextureAtomic(t *testing.T) {
	s := NewGraphicsSpecState(GraphicsState{}, nil)
	key := TextureKey{Stage: StageFragment, Handle: 3, CbufSlot: 1}
	want := testTextureSpec()

	s.RecordTexture(key, want)

	got, ok := s.Texture(key)
	if !ok {
		t.Fatal("registered key not found")
	}
	if got != want {
		t.Errorf("Texture = %+v, want %+v", got, want)
	}
}

func TestRecordTexturePartialFields(t *testing.T) {
	// Field-wise recording without registration leaves the other fields at
	// their zero value; later recordings fill them in without clobbering.
	s := NewGraphicsSpecState(GraphicsState{}, nil)
	key := TextureKey{Stage: StageVertex, Handle: 8, CbufSlot: 2}

	s.RecordTextureFormat(key, FormatCodeRG16F, true)

	got, ok := s.Texture(key)
	if !ok {
		t.Fatal("partial entry not created")
	}
	if got.Format != FormatCodeRG16F || !got.FormatSrgb {
		t.Errorf("format fields = %v/%v, want RG16F/true", got.Format, got.FormatSrgb)
	}
	if got.Target != Target1D || got.CoordNormalized {
		t.Errorf("unrecorded fields mutated: %+v", got)
	}

	s.RecordTextureTarget(key, TargetCubeArray)
	s.RecordTextureCoordNormalized(key, true)

	got, _ = s.Texture(key)
	want := TextureSpec{Format: FormatCodeRG16F, FormatSrgb: true, Target: TargetCubeArray, CoordNormalized: true}
	if got != want {
		t.Errorf("accumulated entry = %+v, want %+v", got, want)
	}
}

func TestRecordConstantBufferUse(t *testing.T) {
	s := NewGraphicsSpecState(GraphicsState{}, nil)

	masks := []uint32{0, 1, 0xaaaa5555, ^uint32(0)}
	for _, mask := range masks {
		s.RecordConstantBufferUse(StageGeometry, mask)
		if got := s.ConstantBufferUse(StageGeometry); got != mask {
			t.Errorf("ConstantBufferUse = %#x, want %#x", got, mask)
		}
	}

	// Other stages stay untouched.
	if got := s.ConstantBufferUse(StageVertex); got != 0 {
		t.Errorf("unrelated stage mask = %#x, want 0", got)
	}
}

func TestTransformFeedbackEnabled(t *testing.T) {
	off := NewGraphicsSpecState(GraphicsState{}, nil)
	if off.TransformFeedbackEnabled() {
		t.Error("nil specs should mean transform feedback disabled")
	}

	on := NewGraphicsSpecState(GraphicsState{}, []TransformFeedbackSpec{
		{VaryingLocations: []byte{0, 1, 2}, Stride: 16},
	})
	if !on.TransformFeedbackEnabled() {
		t.Error("present specs should mean transform feedback enabled")
	}
}

func TestTopologyQueriedFlag(t *testing.T) {
	s := NewGraphicsSpecState(GraphicsState{}, nil)
	if s.TopologyQueried() {
		t.Error("fresh snapshot should not have topology queried")
	}
	s.RecordTopologyQueried()
	if !s.TopologyQueried() {
		t.Error("flag not set after recording")
	}
}

func TestCloneForRecord(t *testing.T) {
	gfx := GraphicsState{Topology: TopologyTriangleStrip, PointSize: 8}
	tf := []TransformFeedbackSpec{{VaryingLocations: []byte{4}, Stride: 4}}
	old := NewGraphicsSpecState(gfx, tf)
	old.RecordConstantBufferUse(StageVertex, 0xff)
	old.RecordTexture(TextureKey{Stage: StageVertex, Handle: 1, CbufSlot: -1}, testTextureSpec())
	old.RecordTopologyQueried()

	fresh := old.CloneForRecord()

	if fresh.Graphics != gfx {
		t.Error("graphics state not carried over")
	}
	if !fresh.TransformFeedbackEnabled() {
		t.Error("transform feedback specs not carried over")
	}
	if fresh.TextureCount() != 0 {
		t.Error("recorded textures must start empty")
	}
	if fresh.ConstantBufferUse(StageVertex) != 0 {
		t.Error("recorded usage masks must start empty")
	}
	if fresh.TopologyQueried() {
		t.Error("topology flag must start clear")
	}
}

// TestConcurrentPerStageRecording exercises the documented model: one
// writer per stage, all writing into the shared snapshot at once.
func TestConcurrentPerStageRecording(t *testing.T) {
	s := NewGraphicsSpecState(GraphicsState{}, nil)

	stages := []ShaderStage{StageVertex, StageTessControl, StageTessEval, StageGeometry, StageFragment}

	var wg sync.WaitGroup
	for _, stage := range stages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mask := uint32(1) << uint32(stage)
			s.RecordConstantBufferUse(stage, mask)
			s.RecordTopologyQueried()
			for h := uint32(0); h < 16; h++ {
				key := TextureKey{Stage: stage, Handle: h, CbufSlot: 1}
				s.RecordTextureFormat(key, FormatCodeRGBA8, false)
				s.RecordTextureTarget(key, Target2D)
				s.RecordTextureCoordNormalized(key, true)
			}
		}()
	}
	wg.Wait()

	for _, stage := range stages {
		if got := s.ConstantBufferUse(stage); got != uint32(1)<<uint32(stage) {
			t.Errorf("stage %v mask = %#x", stage, got)
		}
	}
	if got := s.TextureCount(); got != len(stages)*16 {
		t.Errorf("TextureCount = %d, want %d", got, len(stages)*16)
	}
	if !s.TopologyQueried() {
		t.Error("topology flag lost")
	}
}
