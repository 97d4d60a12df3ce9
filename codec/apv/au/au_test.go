/*
NAME
  au_test.go

DESCRIPTION
  au_test.go tests the frame/AU orchestrator's encode/decode round trip:
  a single-tile monochrome frame, a multi-tile 4:2:2 frame carrying
  metadata, and the must-begin-with-AU-info validation rule of §3.
*/

package au

import (
	"testing"

	"github.com/ausocean/apv/codec/apv/header"
	"github.com/ausocean/apv/codec/apv/meta"
	"github.com/ausocean/apv/codec/apv/rdoq"
	"github.com/ausocean/apv/codec/apv/tile"
	"github.com/ausocean/apv/codec/apv/transform"
)

func solidPlane(width, height int, v int32) *tile.Plane {
	p := tile.NewPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.Set(x, y, v)
		}
	}
	return p
}

func samePlane(t *testing.T, name string, got, want *tile.Plane) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("%s: size mismatch: got %dx%d, want %dx%d", name, got.Width, got.Height, want.Width, want.Height)
	}
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			if got.Get(x, y) != want.Get(x, y) {
				t.Fatalf("%s: sample (%d,%d): got %d, want %d", name, x, y, got.Get(x, y), want.Get(x, y))
			}
		}
	}
}

func TestEncodeDecodeAUSingleTileMonochromeIdentity(t *testing.T) {
	const bitDepth = 10
	const width, height = 32, 16
	grey := int32(1 << (bitDepth - 1))

	plane := solidPlane(width, height, grey)
	identity := transform.IdentityQMatrix()

	frame := FrameInput{
		PBUType: header.PBUPrimaryFrame,
		GroupID: 0,
		Info: header.FrameInfo{
			ProfileIDC:      1,
			LevelIDC:        10,
			BandIDC:         0,
			Width:           width,
			Height:          height,
			ChromaFormatIDC: header.ChromaMonochrome,
			BitDepth:        bitDepth,
		},
		TileWidthInMBs:  2,
		TileHeightInMBs: 1,
		Planes:          []*tile.Plane{plane},
		QMatrix:         []*transform.QMatrix{&identity},
		QP:              []int{0},
		RDOQ:            make([]*rdoq.Params, 1),
	}

	opts := Options{Kernels: transform.DetectKernelSet(), Threads: 2}

	encoded, err := EncodeAU([]FrameInput{frame}, nil, opts)
	if err != nil {
		t.Fatalf("unexpected EncodeAU error: %v", err)
	}

	decoded, err := DecodeAU(encoded, nil, opts)
	if err != nil {
		t.Fatalf("unexpected DecodeAU error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d frames, want 1", len(decoded))
	}
	samePlane(t, "luma", decoded[0].Planes[0], plane)
}

func TestEncodeDecodeAUMultiTile422WithMetadata(t *testing.T) {
	const bitDepth = 10
	const width, height = 64, 32 // 4x2 luma macroblocks
	grey := int32(1 << (bitDepth - 1))

	lumaPlane := solidPlane(width, height, grey)
	chromaPlane := solidPlane(width/2, height, grey)
	identity := transform.IdentityQMatrix()

	frame := FrameInput{
		PBUType: header.PBUPrimaryFrame,
		GroupID: 3,
		Info: header.FrameInfo{
			ProfileIDC:      2,
			LevelIDC:        20,
			BandIDC:         1,
			Width:           width,
			Height:          height,
			ChromaFormatIDC: header.Chroma422,
			BitDepth:        bitDepth,
		},
		TileWidthInMBs:  2,
		TileHeightInMBs: 1, // 2x2 tile grid
		Planes:          []*tile.Plane{lumaPlane, chromaPlane, chromaPlane},
		QMatrix:         []*transform.QMatrix{&identity, &identity, &identity},
		QP:              []int{4, 4, 4},
		RDOQ:            make([]*rdoq.Params, 3),
	}

	metadata := meta.New()
	var uuid [16]byte
	if err := metadata.Set(3, meta.TypeCLL, make([]byte, 4), uuid); err != nil {
		t.Fatal(err)
	}

	opts := Options{Kernels: transform.DetectKernelSet(), Threads: 4}

	encoded, err := EncodeAU([]FrameInput{frame}, metadata, opts)
	if err != nil {
		t.Fatalf("unexpected EncodeAU error: %v", err)
	}

	decodedMeta := meta.New()
	decoded, err := DecodeAU(encoded, decodedMeta, opts)
	if err != nil {
		t.Fatalf("unexpected DecodeAU error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("got %d frames, want 1", len(decoded))
	}
	samePlane(t, "luma", decoded[0].Planes[0], lumaPlane)
	samePlane(t, "cb", decoded[0].Planes[1], chromaPlane)
	samePlane(t, "cr", decoded[0].Planes[2], chromaPlane)

	if !metadata.Equal(decodedMeta) {
		t.Errorf("decoded metadata does not match original:\nwant %+v\ngot  %+v", metadata.GetAll(), decodedMeta.GetAll())
	}
}

func TestDecodeAURejectsMissingAUInfo(t *testing.T) {
	bogus := header.AppendAU(nil, header.AppendPBU(nil, header.PBU{Type: header.PBUFiller, Payload: []byte{0}}))
	if _, err := DecodeAU(bogus, nil, Options{Kernels: transform.DetectKernelSet(), Threads: 1}); err != ErrMissingAUInfo {
		t.Errorf("got %v, want ErrMissingAUInfo", err)
	}
}
