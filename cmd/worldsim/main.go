// Command worldsim is the minimal CLI bridge around the simulation
// engine: parse flags, run the requested number of days, write the
// event stream as JSONL and log the daily summaries. None of the
// simulation logic lives here — see internal/tickengine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/tickengine"
)

func main() {
	seed := flag.Int64("seed", 42, "integer seed")
	days := flag.Int("days", 30, "number of days to advance")
	eventsPath := flag.String("events", "", "path to write the JSONL event log (default: stdout)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		slog.Info("worldsim starting (non-interactive)", "seed", *seed, "days", *days)
	} else {
		slog.Info("worldsim starting", "seed", *seed, "days", *days)
	}

	out := os.Stdout
	if *eventsPath != "" {
		f, err := os.Create(*eventsPath)
		if err != nil {
			slog.Error("failed to open events file", "path", *eventsPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w, events, summaries, err := tickengine.Run(*seed, *days, config.Default())
	if err != nil {
		slog.Error("simulation run failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(out)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			slog.Error("failed to encode event", "error", err)
			os.Exit(1)
		}
	}

	for _, s := range summaries {
		slog.Info(fmt.Sprintf("day %d summary", s.Day), "tick", s.Tick, "sites", len(s.Sites))
	}

	slog.Info("worldsim finished", "finalTick", w.Tick, "npcs", len(w.NPCs), "sites", len(w.Sites))
}
