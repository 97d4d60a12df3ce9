/*
NAME
  bitrate.go

DESCRIPTION
  bitrate.go implements the family-to-bitrate mapping of §4.7: a reference
  bits-per-frame-at-30fps curve, piecewise-linear across five anchor
  resolutions, scaled by a per-family ratio and by the actual frame rate.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

// Family identifies one of the four bitrate families named in §4.7.
type Family int

const (
	Family422LQ Family = iota
	Family422SQ
	Family422HQ
	Family444HQ
)

// ratio holds the scaling ratio applied to the reference curve for each
// family, per §4.7: {1/1.96, 1/1.4, 1, 1.5}.
var ratio = map[Family]float64{
	Family422LQ: 1.0 / 1.96,
	Family422SQ: 1.0 / 1.4,
	Family422HQ: 1.0,
	Family444HQ: 1.5,
}

// curvePoint is one anchor of the reference bits-per-frame-at-30fps curve,
// keyed by luma pixel count.
type curvePoint struct {
	pixels uint64
	key    float64
}

// referenceCurve anchors the reference curve at five named resolutions,
// per §4.7, as a monotonically increasing bits-per-frame-at-30fps ladder.
var referenceCurve = []curvePoint{
	{pixels: 960 * 540, key: 750},     // qHD
	{pixels: 1280 * 720, key: 1350},   // 720p
	{pixels: 1920 * 1080, key: 3000},  // FHD
	{pixels: 2560 * 1440, key: 5400},  // 2K
	{pixels: 3840 * 2160, key: 12000}, // UHD
}

// key interpolates the reference curve at pixels, clamping to the table's
// endpoints outside its range.
func key(pixels uint64) float64 {
	pts := referenceCurve
	if pixels <= pts[0].pixels {
		return pts[0].key
	}
	last := pts[len(pts)-1]
	if pixels >= last.pixels {
		return last.key
	}
	for i := 1; i < len(pts); i++ {
		if pixels <= pts[i].pixels {
			lo, hi := pts[i-1], pts[i]
			frac := float64(pixels-lo.pixels) / float64(hi.pixels-lo.pixels)
			return lo.key + frac*(hi.key-lo.key)
		}
	}
	return last.key
}

// BitrateKbps returns the reference bitrate in kbps for family at the given
// frame dimensions and rate, per §4.7/§8 scenario 6:
//
//	kbps = key(width*height) * ratio[family] * 1000/30 * (fps/30)
//
// At fps == 30 this reduces to key(pixels) * ratio[family] * 1000/30, the
// exact form scenario 6 specifies.
func BitrateKbps(family Family, width, height, fps uint32) uint32 {
	pixels := uint64(width) * uint64(height)
	kbpsAt30 := key(pixels) * ratio[family] * (1000.0 / 30.0)
	if fps == 0 {
		fps = 30
	}
	kbps := kbpsAt30 * (float64(fps) / 30.0)
	return uint32(kbps + 0.5)
}
