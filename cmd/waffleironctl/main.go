// Command waffleironctl replays a recorded command script against a
// fresh engine session and reports what happened: the diagnostics of the
// last ModelUpdated as a table, a one-line summary of its feature count,
// rollback index and mesh count, and, if requested, an STL export of the
// final tip solid.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/engine"
	"github.com/foundrycad/waffle-iron/kernel/memkernel"
	"github.com/foundrycad/waffle-iron/project/fixture"
	"github.com/foundrycad/waffle-iron/protocol"
)

func main() {
	scriptPath := flag.String("script", "", "path to a JSON command script (array of {type, body} envelopes)")
	fixturePath := flag.String("fixture", "", "path to a YAML fixture script (alternative to -script)")
	stlOut := flag.String("stl", "", "write the final tip solid to this path as binary STL")
	flag.Parse()

	if *scriptPath == "" && *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "waffleironctl: one of -script or -fixture is required")
		os.Exit(2)
	}

	ctx := context.Background()
	k := memkernel.NewBuilder().Build()
	eng := engine.NewBuilder().
		WithKernel(k).
		WithIntrospect(k).
		WithMesher(k).
		WithLogWriter(os.Stderr).
		Build(ctx)
	defer eng.Close()

	var last protocol.ModelUpdated
	switch {
	case *fixturePath != "":
		last = runFixture(ctx, eng, *fixturePath)
	default:
		last = runScript(ctx, eng, *scriptPath)
	}

	diag.NewReport(last.Diagnostics).WriteTable(os.Stdout)
	fmt.Printf("features: %d  active: %s  meshes: %d\n",
		len(last.Features), activeIndexLabel(last.ActiveIndex), len(last.Meshes))

	if *stlOut != "" {
		exportStl(ctx, eng, *stlOut)
	}

	atexit.Exit(0)
}

func runScript(ctx context.Context, eng *engine.Engine, path string) protocol.ModelUpdated {
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read script", "path", path, "error", err)
		os.Exit(1)
	}

	var envelopes []json.RawMessage
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		slog.Error("parse script", "path", path, "error", err)
		os.Exit(1)
	}

	var last protocol.ModelUpdated
	for i, env := range envelopes {
		cmd, err := protocol.DecodeCommand(env)
		if err != nil {
			slog.Error("decode command", "index", i, "error", err)
			os.Exit(1)
		}
		events, err := eng.Submit(ctx, cmd)
		if err != nil {
			slog.Error("submit command", "index", i, "error", err)
			os.Exit(1)
		}
		for _, evt := range events {
			if e, ok := evt.(protocol.Error); ok {
				slog.Warn("command reported error", "index", i, "message", e.Message)
			}
			if mu, ok := evt.(protocol.ModelUpdated); ok {
				last = mu
			}
		}
	}
	return last
}

// runFixture replays a YAML fixture script (project/fixture's shorthand
// format) by translating each staged feature into an AddFeature command,
// so the same engine command pipeline, diagnostics included, runs
// regardless of which script format was given.
func runFixture(ctx context.Context, eng *engine.Engine, path string) protocol.ModelUpdated {
	script, err := fixture.Load(path)
	if err != nil {
		slog.Error("load fixture", "path", path, "error", err)
		os.Exit(1)
	}
	tree, err := fixture.Build(script)
	if err != nil {
		slog.Error("build fixture", "path", path, "error", err)
		os.Exit(1)
	}

	var last protocol.ModelUpdated
	for _, f := range tree.Features {
		events, err := eng.Submit(ctx, protocol.AddFeature{FeatureID: f.ID, Name: f.Name, Operation: f.Operation})
		if err != nil {
			slog.Error("submit fixture feature", "feature", f.ID, "error", err)
			os.Exit(1)
		}
		for _, evt := range events {
			if e, ok := evt.(protocol.Error); ok {
				slog.Warn("feature reported error", "feature", f.ID, "message", e.Message)
			}
			if mu, ok := evt.(protocol.ModelUpdated); ok {
				last = mu
			}
		}
	}
	return last
}

func exportStl(ctx context.Context, eng *engine.Engine, path string) {
	events, err := eng.Submit(ctx, protocol.ExportStl{})
	if err != nil {
		slog.Error("export stl", "error", err)
		return
	}
	for _, evt := range events {
		if ready, ok := evt.(protocol.StlExportReady); ok {
			if err := os.WriteFile(path, ready.StlData, 0o644); err != nil {
				slog.Error("write stl", "path", path, "error", err)
				return
			}
			fmt.Printf("wrote %d bytes to %s\n", len(ready.StlData), path)
			return
		}
		if e, ok := evt.(protocol.Error); ok {
			slog.Warn("export stl reported error", "message", e.Message)
		}
	}
}

func activeIndexLabel(idx *int) string {
	if idx == nil {
		return "tip"
	}
	return fmt.Sprintf("%d", *idx)
}
