/*
NAME
  levels.go

DESCRIPTION
  levels.go implements the level table and level auto-selection of §4.7:
  the smallest level whose luma-sample-rate and per-band bitrate ceilings
  cover a requested configuration.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

package param

// levelEntry is one row of the level table: a level_idc value together with
// the luma-sample-rate ceiling and the per-band (0..3) bitrate ceiling, in
// kbps, that level permits.
type levelEntry struct {
	levelIDC      uint8
	maxSampleRate uint64
	maxBitrate    [numBands]uint32 // kbps, indexed by band_idc
}

// numBands is the number of coarse data-rate tiers band_idc selects among,
// per §3's band_idc ∈ 0..3.
const numBands = 4

// levelTable ladders level_idc (level*10, so 1.1 -> 11) against a luma
// sample-rate ceiling and four per-band bitrate ceilings, per §4.7.
var levelTable = []levelEntry{
	{levelIDC: 10, maxSampleRate: 3_041_280, maxBitrate: [numBands]uint32{7_000, 11_000, 14_000, 21_000}},
	{levelIDC: 11, maxSampleRate: 6_082_560, maxBitrate: [numBands]uint32{14_000, 21_000, 28_000, 42_000}},
	{levelIDC: 20, maxSampleRate: 15_667_200, maxBitrate: [numBands]uint32{36_000, 53_000, 71_000, 106_000}},
	{levelIDC: 21, maxSampleRate: 31_334_400, maxBitrate: [numBands]uint32{71_000, 106_000, 141_000, 212_000}},
	{levelIDC: 30, maxSampleRate: 66_846_720, maxBitrate: [numBands]uint32{101_000, 151_000, 201_000, 301_000}},
	{levelIDC: 31, maxSampleRate: 133_693_440, maxBitrate: [numBands]uint32{201_000, 301_000, 401_000, 602_000}},
	{levelIDC: 40, maxSampleRate: 265_420_800, maxBitrate: [numBands]uint32{401_000, 602_000, 780_000, 1_170_000}},
	{levelIDC: 41, maxSampleRate: 530_841_600, maxBitrate: [numBands]uint32{780_000, 1_170_000, 1_560_000, 2_340_000}},
	{levelIDC: 50, maxSampleRate: 1_061_683_200, maxBitrate: [numBands]uint32{1_560_000, 2_340_000, 3_324_000, 4_986_000}},
	{levelIDC: 51, maxSampleRate: 2_123_366_400, maxBitrate: [numBands]uint32{3_324_000, 4_986_000, 6_648_000, 9_972_000}},
	{levelIDC: 60, maxSampleRate: 4_777_574_400, maxBitrate: [numBands]uint32{6_648_000, 9_972_000, 13_296_000, 19_944_000}},
	{levelIDC: 61, maxSampleRate: 8_493_465_600, maxBitrate: [numBands]uint32{13_296_000, 19_944_000, 26_592_000, 39_888_000}},
	{levelIDC: 70, maxSampleRate: 16_986_931_200, maxBitrate: [numBands]uint32{26_592_000, 39_888_000, 53_184_000, 79_776_000}},
	{levelIDC: 71, maxSampleRate: 33_973_862_400, maxBitrate: [numBands]uint32{53_184_000, 79_776_000, 106_368_000, 159_552_000}},
}

// MaxLevelIDC is the highest level_idc the table covers.
var MaxLevelIDC = levelTable[len(levelTable)-1].levelIDC

// SelectLevel returns the smallest level_idc whose table entry covers both
// sampleRate and bitrateKbps at the given band, per §4.7's auto-selection
// rule. It returns (0, false) if no table entry covers the request, which
// Validate reports as ErrInvalidLevel.
func SelectLevel(sampleRate uint64, bitrateKbps uint32, band uint8) (uint8, bool) {
	if int(band) >= numBands {
		return 0, false
	}
	for _, e := range levelTable {
		if sampleRate <= e.maxSampleRate && bitrateKbps <= e.maxBitrate[band] {
			return e.levelIDC, true
		}
	}
	return 0, false
}

// levelAtLeast reports whether level covers at least the capability of
// floor, i.e. level appears no earlier than floor in levelTable.
func levelAtLeast(level, floor uint8) bool {
	li := levelIndex(level)
	fi := levelIndex(floor)
	if li < 0 || fi < 0 {
		return false
	}
	return li >= fi
}

func levelIndex(levelIDC uint8) int {
	for i, e := range levelTable {
		if e.levelIDC == levelIDC {
			return i
		}
	}
	return -1
}
