/*
NAME
  types.go

DESCRIPTION
  types.go defines the header-model data structures of §3/§6: frame info,
  frame header, tile header and AU info, plus the chroma-format and PBU
  type enumerations they use.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package header serialises and parses the APV header model: frame-info,
// frame header, tile header and AU info, each read and written field by
// field against the bit-level reader/writer in codec/apv/bits.
package header

// PBU type codes, per §3/§6.
const (
	PBUPrimaryFrame   = 1
	PBUNonPrimaryFrame = 2
	PBUPreviewFrame   = 25
	PBUDepthFrame     = 26
	PBUAlphaFrame     = 27
	PBUAUInfo         = 65
	PBUMetadata       = 66
	PBUFiller         = 67
)

// IsFramePBU reports whether t is one of the frame-carrying PBU types.
func IsFramePBU(t uint8) bool {
	switch t {
	case PBUPrimaryFrame, PBUNonPrimaryFrame, PBUPreviewFrame, PBUDepthFrame, PBUAlphaFrame:
		return true
	default:
		return false
	}
}

// Chroma format codes, per §3. chroma_format_idc == 1 (4:2:0) is reserved
// and always rejected at parse time, per the REDESIGN note of §9: the
// original source's Y4M parser recognised 4:2:0 even though the profile
// table excludes it.
const (
	ChromaMonochrome = 0
	chromaReserved420 = 1
	Chroma422        = 2
	Chroma444        = 3
	Chroma444Alpha   = 4
	Chroma422Alpha   = 5
)

// NumComponents returns the number of coded components (luma + chroma [+
// alpha]) for a chroma format, or 0 if the format code is not one of the
// values §3 permits.
func NumComponents(chromaFormatIDC uint8) int {
	switch chromaFormatIDC {
	case ChromaMonochrome:
		return 1
	case Chroma422, Chroma444:
		return 3
	case Chroma444Alpha, Chroma422Alpha:
		return 4
	default:
		return 0
	}
}

// ValidChromaFormat reports whether idc is a legal, non-reserved chroma
// format code.
func ValidChromaFormat(idc uint8) bool {
	return NumComponents(idc) > 0
}

// FrameInfo is the fixed-size frame-info structure coded at the head of
// every frame and reiterated in AU-info, per §3/§6.
type FrameInfo struct {
	ProfileIDC           uint8
	LevelIDC             uint8
	BandIDC              uint8 // 0..3
	Width                uint32 // frame_width, 24 bits
	Height               uint32 // frame_height, 24 bits
	ChromaFormatIDC      uint8  // 4 bits
	BitDepth             uint8  // bit_depth_minus8 + 8, so 8..23
	CaptureTimeDistance  uint8
}

// ColorDescription is the optional colour-description block of the frame
// header.
type ColorDescription struct {
	ColorPrimaries uint8
	Transfer       uint8
	Matrix         uint8
	FullRange      bool
}

// FrameHeader is the per-frame header preceding a frame's tile payloads,
// per §3/§6.
type FrameHeader struct {
	Info       FrameInfo
	ColorDesc  *ColorDescription // nil when color_desc_present == 0
	QMatrix    [][BlockCoeffs]uint8 // one 64-entry matrix per component, nil when use_q_matrix == 0

	TileWidthInMBs  uint32 // 20 bits
	TileHeightInMBs uint32 // 20 bits

	// TileSizePresent controls whether TileSizes is serialised inline in
	// the frame header (random access) or must be discovered by the
	// decoder scanning each tile's own tile_size field.
	TileSizePresent bool
	TileSizes       []uint32
}

// BlockCoeffs is the number of entries in one component's quantization
// matrix (one per 8x8 position).
const BlockCoeffs = 64

// TileHeader is the fixed 5-byte-plus-per-component header preceding a
// tile's coded component data, per §4.5/§6.
type TileHeader struct {
	HeaderSize    uint16
	TileIndex     uint16
	TileDataSize  []uint32 // per component, >= 1 even for dummy pre-sizing writes
	TileQP        []uint8  // per component
}

// AUInfoEntry describes one frame within an AU-info PBU.
type AUInfoEntry struct {
	PBUType   uint8
	GroupID   uint16
	FrameInfo FrameInfo
}

// AUInfo is the payload of the AU-info PBU that must head every valid
// access unit, per §3.
type AUInfo struct {
	Frames []AUInfoEntry
}
