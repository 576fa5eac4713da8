// Copyright 2025 The AnaServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command anaindex builds an AnaServe dictionary from a word list.
//
// Every word is filed under its sorted, lowercased letters, so anagrams share
// one entry:
//
//	anaindex -in words.txt -out index.json
//	anaindex -in words.txt -out index.msgpack
//
// The output format follows the extension of -out.
package main

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bastiangx/anaserve/internal/utils"
	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/charmbracelet/log"
)

func main() {
	in := flag.String("in", "", "Word list, one word per line")
	out := flag.String("out", "index.json", "Output file (.json or .msgpack)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	idx, err := dictionary.Load(*in)
	if err != nil {
		log.Fatalf("Failed to read word list: %v", err)
	}

	if err := utils.EnsureDir(filepath.Dir(*out)); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}
	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	w := bufio.NewWriter(file)

	snapshot, _ := dictionary.GetFormatInfo(dictionary.FormatSnapshot)
	if slices.Contains(snapshot.Extensions, strings.ToLower(filepath.Ext(*out))) {
		err = dictionary.WriteSnapshot(w, idx)
	} else {
		err = dictionary.WriteJSON(w, idx)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	log.Infof("Indexed %s words into %s entries (%s skipped) -> %s",
		utils.FormatWithCommas(idx.WordCount()),
		utils.FormatWithCommas(idx.Len()),
		utils.FormatWithCommas(idx.Skipped()),
		*out)
}
