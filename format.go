package shaderspec

import "github.com/gogpu/gputypes"

// FormatCode is the packed format field of a guest texture descriptor.
// Like TextureTarget, the format belongs to the bound texture: the sampling
// instruction carries no format information, so the code captured in the
// snapshot is the only record of what the shader read.
type FormatCode uint32

const (
	FormatCodeInvalid FormatCode = iota
	FormatCodeR8
	FormatCodeRG8
	FormatCodeRGBA8
	FormatCodeBGRA8
	FormatCodeR16F
	FormatCodeRG16F
	FormatCodeRGBA16F
	FormatCodeR32F
	FormatCodeRG32F
	FormatCodeRGBA32F
	FormatCodeR32Uint
	FormatCodeRGB10A2
	FormatCodeDepth24Stencil8
)

// formatTable maps each known code to its linear and sRGB resolutions.
// Formats without an sRGB variant resolve to the linear one either way.
var formatTable = map[FormatCode][2]gputypes.TextureFormat{
	FormatCodeR8:              {gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR8Unorm},
	FormatCodeRG8:             {gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatRG8Unorm},
	FormatCodeRGBA8:           {gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb},
	FormatCodeBGRA8:           {gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb},
	FormatCodeR16F:            {gputypes.TextureFormatR16Float, gputypes.TextureFormatR16Float},
	FormatCodeRG16F:           {gputypes.TextureFormatRG16Float, gputypes.TextureFormatRG16Float},
	FormatCodeRGBA16F:         {gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatRGBA16Float},
	FormatCodeR32F:            {gputypes.TextureFormatR32Float, gputypes.TextureFormatR32Float},
	FormatCodeRG32F:           {gputypes.TextureFormatRG32Float, gputypes.TextureFormatRG32Float},
	FormatCodeRGBA32F:         {gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatRGBA32Float},
	FormatCodeR32Uint:         {gputypes.TextureFormatR32Uint, gputypes.TextureFormatR32Uint},
	FormatCodeRGB10A2:         {gputypes.TextureFormatRGB10A2Unorm, gputypes.TextureFormatRGB10A2Unorm},
	FormatCodeDepth24Stencil8: {gputypes.TextureFormatDepth24PlusStencil8, gputypes.TextureFormatDepth24PlusStencil8},
}

// Resolve converts the packed code plus the descriptor's sRGB flag into the
// canonical texture format. Unknown codes resolve to RGBA8: a mispredicted
// format changes the fingerprint and forces a recompile on the next load,
// it never corrupts rendering.
func (c FormatCode) Resolve(srgb bool) gputypes.TextureFormat {
	entry, ok := formatTable[c]
	if !ok {
		if srgb {
			return gputypes.TextureFormatRGBA8UnormSrgb
		}
		return gputypes.TextureFormatRGBA8Unorm
	}
	if srgb {
		return entry[1]
	}
	return entry[0]
}
