// blocktool is a CLI utility for inspecting block assets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/blockforge/internal/assets"
	"github.com/Faultbox/blockforge/internal/config"
	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/internal/model"
	"github.com/Faultbox/blockforge/internal/pipeline"
	"github.com/Faultbox/blockforge/pkg/assetpack"
	"github.com/Faultbox/blockforge/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "model":
		cmdModel(args)
	case "prefab":
		cmdPrefab(args)
	case "atlas":
		cmdAtlas(args)
	case "list", "ls":
		cmdList(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`blocktool - block asset inspection utility

Usage:
  blocktool <command> [options]

Commands:
  model [-dump] <file.blockymodel>        Print the node tree of a model
  prefab <file.prefab.json>               Show prefab size and block counts
  atlas -assets <paths> <file.prefab.json> Pack a prefab's textures without exporting
  ls <dir|file.zip> [prefix]              List the files of an asset source

Examples:
  blocktool model Common/Blocks/Lamp.blockymodel
  blocktool prefab House.prefab.json
  blocktool atlas -assets Assets.zip -size 1024 House.prefab.json
  blocktool ls Assets.zip Server/Item/Items`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdModel(args []string) {
	fs := flag.NewFlagSet("model", flag.ExitOnError)
	dump := fs.Bool("dump", false, "Dump the parsed document")
	maxNodes := fs.Int("max-nodes", 256, "Node capacity")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blocktool model [-dump] <file.blockymodel>")
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	doc, err := formats.ParseBlockyModel(data)
	if err != nil {
		fail(err)
	}
	if *dump {
		spew.Dump(doc)
		return
	}

	name := strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0)))
	m, err := model.Build(name, doc, nil, *maxNodes)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Model: %s (%d nodes)\n", name, m.Len())
	m.Walk(func(i int, n *model.Node) bool {
		depth := 0
		for p := m.Parent(i); p >= 0; p = m.Parent(p) {
			depth++
		}
		label := m.NodeName(i)
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		fmt.Printf("%s%s [%s] pos=%v size=%v\n", strings.Repeat("  ", depth), label, n.Shape, n.Position, n.Size)
		return true
	})
}

func cmdPrefab(args []string) {
	fs := flag.NewFlagSet("prefab", flag.ExitOnError)
	limit := fs.Int("n", 20, "Show the N most used blocks (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blocktool prefab <file.prefab.json>")
		os.Exit(1)
	}

	p, err := pipeline.LoadPrefab(fs.Arg(0))
	if err != nil {
		fail(err)
	}

	counts := make(map[string]int)
	for _, b := range p.Blocks {
		counts[b.Name]++
	}
	type blockStat struct {
		name  string
		count int
	}
	var stats []blockStat
	for name, count := range counts {
		stats = append(stats, blockStat{name, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].name < stats[j].name
	})

	lo, hi := p.Bounds()
	size := p.Size()
	fmt.Printf("Prefab: %s\n", p.Name)
	fmt.Printf("Blocks: %d (%d distinct)\n", p.Len(), len(stats))
	fmt.Printf("Bounds: %v .. %v (%dx%dx%d)\n", lo, hi, size.X, size.Y, size.Z)
	fmt.Printf("Anchor: %v\n", p.Anchor)
	fmt.Println()
	for i, s := range stats {
		if *limit > 0 && i >= *limit {
			fmt.Printf("  ... %d more\n", len(stats)-i)
			break
		}
		fmt.Printf("  %-40s %d\n", s.name, s.count)
	}
}

func cmdAtlas(args []string) {
	fs := flag.NewFlagSet("atlas", flag.ExitOnError)
	paths := fs.String("assets", "", "Comma-separated asset directories or zip archives")
	size := fs.Int("size", 2048, "Atlas width and height in pixels")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 || *paths == "" {
		fmt.Fprintln(os.Stderr, "Usage: blocktool atlas -assets <paths> [-size N] <file.prefab.json>")
		os.Exit(1)
	}

	level := "warn"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fail(err)
	}
	defer logger.Sync()

	cfg := config.Default()
	cfg.Atlas.Width, cfg.Atlas.Height = *size, *size
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	mgr := assets.NewManager()
	defer mgr.Close()
	for _, p := range strings.Split(*paths, ",") {
		if err := mgr.AddPath(strings.TrimSpace(p)); err != nil {
			fail(err)
		}
	}

	p, err := pipeline.LoadPrefab(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	e, err := pipeline.New(cfg, mgr)
	if err != nil {
		fail(err)
	}
	if err := e.Prepare(context.Background(), p.UniqueNames()); err != nil {
		fail(err)
	}

	packer := e.Packer()
	regions := packer.Regions()
	used := 0
	for _, r := range regions {
		used += r.Width * r.Height
		fmt.Printf("%4d  %4d,%-4d %4dx%-4d %s\n", r.Index, r.X, r.Y, r.Width, r.Height, r.Name)
	}
	w, h := packer.Size()
	fmt.Fprintf(os.Stderr, "\n%d regions, %.1f%% of %dx%d used\n", len(regions), 100*float64(used)/float64(w*h), w, h)
	if dropped := packer.Dropped(); len(dropped) > 0 {
		fmt.Fprintf(os.Stderr, "%d textures dropped: %s\n", len(dropped), strings.Join(dropped, ", "))
	}
	if missing := e.Models().Missing(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "%d blocks without model: %s\n", len(missing), strings.Join(missing, ", "))
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blocktool ls <dir|file.zip> [prefix]")
		os.Exit(1)
	}

	src, err := assetpack.Open(fs.Arg(0))
	if errors.Is(err, assetpack.ErrNotArchive) {
		fmt.Fprintf(os.Stderr, "%s is neither a directory nor a zip archive\n", fs.Arg(0))
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}
	defer src.Close()

	prefix := ""
	if fs.NArg() > 1 {
		prefix = assetpack.NormalizePath(fs.Arg(1))
	}

	files := src.List()
	sort.Strings(files)
	count := 0
	for _, f := range files {
		if prefix != "" && !strings.HasPrefix(assetpack.NormalizePath(f), prefix) {
			continue
		}
		fmt.Println(f)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d files)\n", count)
}
