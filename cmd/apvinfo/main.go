/*
NAME
  apvinfo

DESCRIPTION
  apvinfo prints the AU-info of an APV access-unit file without decoding
  any tile data: frame count, and each frame's pbu_type, group_id and
  frame_info fields.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package main implements apvinfo, a thin CLI over apv.ReadInfo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ausocean/apv/codec/apv"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <access-unit-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("apvinfo: reading file: %v", err)
	}

	info, err := apv.ReadInfo(data)
	if err != nil {
		log.Fatalf("apvinfo: reading au-info: %v (code %d)", err, apv.Code(err))
	}

	fmt.Printf("frames: %d\n", len(info.Frames))
	for i, f := range info.Frames {
		fi := f.FrameInfo
		fmt.Printf("  [%d] pbu_type=%d group_id=%d profile_idc=%d level_idc=%d band_idc=%d %dx%d chroma_format_idc=%d bit_depth=%d\n",
			i, f.PBUType, f.GroupID, fi.ProfileIDC, fi.LevelIDC, fi.BandIDC, fi.Width, fi.Height, fi.ChromaFormatIDC, fi.BitDepth)
	}
}
