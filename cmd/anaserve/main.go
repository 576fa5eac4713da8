// Copyright 2025 The AnaServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anagram server and its CLI [DBG] application.

AnaServe answers "which words can be made from these letters" queries. It
loads a dictionary index once at startup and keeps it in memory; every query
is a scan of the entries no longer than the key.

# Usage

Start the server with default settings:

	anaserve

Use a custom dictionary and enable debug mode:

	anaserve -dict /path/to/index.json -d

Run in CLI mode for interactive testing:

	anaserve -c -exact

# Dictionary

The dictionary is a JSON object mapping composition keys to letter counts
and words, a plain word list (.txt) or a msgpack snapshot (.msgpack). Use
anaindex to build the JSON or snapshot form from a word list.

If the dictionary cannot be loaded the server still starts, answers health
checks with "unavailable" and refuses solve requests with code 503.

# Configuration

Runtime configuration is read from a TOML file, created with defaults when
missing:

	[server]
	cache_size = 1024
	metrics_addr = ":9464"

	[dict]
	path = "data/index.json"

	[cli]
	default_exact = false
	max_words = 40

# Command Line Flags

	-dict string
	    Dictionary file (default from config)
	-config string
	    Config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-exact
	    Start the CLI in exact mode
	-metrics string
	    Prometheus listen address, overrides config
	-version
	    Show current version
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/anaserve/internal/cli"
	"github.com/bastiangx/anaserve/internal/utils"
	"github.com/bastiangx/anaserve/pkg/anagram"
	"github.com/bastiangx/anaserve/pkg/config"
	"github.com/bastiangx/anaserve/pkg/dictionary"
	"github.com/bastiangx/anaserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Version = "0.3.0-beta"
	AppName = "anaserve"
	gh      = "https://github.com/bastiangx/anaserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and the chosen front end together.
// It does not implement logic for them and only manages the flow.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Dictionary file (.json, .txt or .msgpack)")
	configPath := flag.String("config", "", "Path to config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	exactMode := flag.Bool("exact", false, "Start the CLI in exact mode")
	metricsAddr := flag.String("metrics", "", "Prometheus listen address (e.g. :9464)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activeConfig)

	path := appConfig.Dict.Path
	if *dictPath != "" {
		path = *dictPath
	}
	if pathResolver, err := utils.NewPathResolver(); err == nil {
		path = pathResolver.GetDictPath(path)
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}

	// A failed load leaves the solver without an index; queries are then
	// refused as unavailable until restart.
	solver := anagram.NewSolver(nil)
	idx, err := dictionary.Load(path)
	if err != nil {
		var loadErr *dictionary.LoadError
		if errors.As(err, &loadErr) {
			log.Errorf("Dictionary unavailable: %v", loadErr.Err)
		} else {
			log.Errorf("Failed to load dictionary: %v", err)
		}
	} else {
		solver.SetIndex(idx)
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		exact := appConfig.CLI.DefaultExact || *exactMode
		inputHandler := cli.NewInputHandler(solver, exact, appConfig.CLI.MaxWords)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	sigHandler()

	addr := appConfig.Server.MetricsAddr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}
	if addr != "" {
		reg := prometheus.NewRegistry()
		if err := server.RegisterMetrics(reg); err != nil {
			log.Fatalf("Failed to register metrics: %v", err)
		}
		server.ServeMetrics(addr, reg)
	}

	srv := server.NewServer(solver, appConfig, Version)
	showStartupInfo(path, solver)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ AnaServe ] Finds every word hiding in your letters!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dictPath string, solver *anagram.Solver) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " AnaServe ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", dictPath)
	if idx := solver.Index(); idx.Loaded() {
		log.Infof("entries: %s, words: %s", utils.FormatWithCommas(idx.Len()), utils.FormatWithCommas(idx.WordCount()))
		log.Info("status: ready")
	} else {
		log.Warn("status: unavailable")
	}
	fmt.Fprintln(os.Stderr, "==========")
}
