// Command kv6dump prints the contents of KV6 voxel models and can re-encode them.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	digest "github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-kv6/kv6"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	format    string
	bigEndian bool
	strict    bool
	jobs      int
	outDir    string
	level     int
	verbose   bool
}

// report is what kv6dump prints for one input file.
type report struct {
	Path        string     `yaml:"path"`
	Digest      string     `yaml:"digest,omitempty"`
	Fingerprint string     `yaml:"fingerprint,omitempty"`
	DuplicateOf string     `yaml:"duplicate_of,omitempty"`
	Magic       string     `yaml:"magic,omitempty"`
	Size        [3]uint32  `yaml:"size,flow"`
	Pivot       [3]float32 `yaml:"pivot,flow"`
	Voxels      int        `yaml:"voxels"`
	Palette     bool       `yaml:"palette"`
	Problem     string     `yaml:"problem,omitempty"`
	Written     string     `yaml:"written,omitempty"`
	Error       string     `yaml:"error,omitempty"`

	fingerprint uint64
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kv6dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.StringVar(&cfg.format, "format", "text", "output format: text or yaml")
	fs.BoolVar(&cfg.bigEndian, "big-endian", false, "header fields are big-endian")
	fs.BoolVar(&cfg.strict, "strict", false, "reject trailing bytes after the model")
	fs.IntVar(&cfg.jobs, "j", runtime.NumCPU(), "files decoded in parallel")
	fs.StringVar(&cfg.outDir, "o", "", "re-encode every model into this directory")
	fs.IntVar(&cfg.level, "zstd", 0, "zstd level for re-encoded models (0 = uncompressed)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: kv6dump [flags] <file.kv6>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 || (cfg.format != "text" && cfg.format != "yaml") || cfg.level < 0 || cfg.level > 22 {
		fs.Usage()
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reports := dumpAll(fs.Args(), cfg, logger)
	markDuplicates(reports)

	var err error
	if cfg.format == "yaml" {
		err = printYAML(stdout, reports)
	} else {
		printText(stdout, reports)
	}
	if err != nil {
		logger.Error("writing output", "err", err)
		return 1
	}

	for _, r := range reports {
		if r.Error != "" {
			return 1
		}
	}
	return 0
}

// dumpAll decodes every path with at most cfg.jobs files in flight. A failing
// file is recorded in its report and does not stop the others.
func dumpAll(paths []string, cfg config, logger *slog.Logger) []*report {
	reports := make([]*report, len(paths))
	outs := outputPaths(paths, cfg)

	var g errgroup.Group
	g.SetLimit(max(cfg.jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			r, err := dump(path, outs[i], cfg, logger)
			if err != nil {
				logger.Error("decoding model", "path", path, "err", err)
				r.Error = err.Error()
			}
			reports[i] = r
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// outputPaths names the re-encoded file of every input. Inputs sharing a base
// name get a numeric prefix so no two writers target the same file.
func outputPaths(paths []string, cfg config) []string {
	outs := make([]string, len(paths))
	if cfg.outDir == "" {
		return outs
	}
	taken := make(map[string]bool, len(paths))
	for i, path := range paths {
		base := filepath.Base(path)
		if cfg.level > 0 && !strings.HasSuffix(base, ".zst") {
			base += ".zst"
		}
		name := base
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%d-%s", n, base)
		}
		taken[name] = true
		outs[i] = filepath.Join(cfg.outDir, name)
	}
	return outs
}

func dump(path, out string, cfg config, logger *slog.Logger) (*report, error) {
	r := &report{Path: path}

	opts := []kv6.Option{kv6.WithLogger(logger)}
	if cfg.bigEndian {
		opts = append(opts, kv6.WithByteOrder(binary.BigEndian))
	}
	if cfg.strict {
		opts = append(opts, kv6.WithStrict())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	r.Digest = digest.FromBytes(data).String()

	raw, err := kv6.Unpack(data, opts...)
	if err != nil {
		return r, err
	}
	m, err := kv6.Decode(raw, opts...)
	if err != nil {
		return r, err
	}

	r.Magic = fmt.Sprintf("0x%08X", m.Magic)
	r.Size = [3]uint32{m.SizeX, m.SizeY, m.SizeZ}
	r.Pivot = [3]float32{m.Pivot.X, m.Pivot.Y, m.Pivot.Z}
	r.Voxels = len(m.Voxels)
	r.Palette = m.Palette != nil

	if err := m.CheckMagic(); err != nil {
		return r, err
	}
	if err := m.Validate(); err != nil {
		r.Problem = err.Error()
	}

	if r.fingerprint, err = m.Fingerprint(); err != nil {
		return r, err
	}
	r.Fingerprint = fmt.Sprintf("%016x", r.fingerprint)

	if out != "" {
		opts = append(opts, kv6.WithCompression(cfg.level))
		if err := kv6.WriteFile(out, m, opts...); err != nil {
			return r, err
		}
		r.Written = out
	}
	return r, nil
}

// markDuplicates points every model at the first earlier input that encodes
// to the same bytes.
func markDuplicates(reports []*report) {
	seen := make(map[uint64]string)
	for _, r := range reports {
		if r.Fingerprint == "" {
			continue
		}
		if first, ok := seen[r.fingerprint]; ok {
			r.DuplicateOf = first
			continue
		}
		seen[r.fingerprint] = r.Path
	}
}

func printText(w io.Writer, reports []*report) {
	for _, r := range reports {
		fmt.Fprintf(w, "=== %s ===\n", r.Path)
		if r.Error != "" {
			fmt.Fprintf(w, "ERROR: %s\n\n", r.Error)
			continue
		}
		fmt.Fprintf(w, "Magic: %s\n", r.Magic)
		fmt.Fprintf(w, "Size: %d x %d x %d\n", r.Size[0], r.Size[1], r.Size[2])
		fmt.Fprintf(w, "Pivot: (%g, %g, %g)\n", r.Pivot[0], r.Pivot[1], r.Pivot[2])
		fmt.Fprintf(w, "Voxels: %d\n", r.Voxels)
		fmt.Fprintf(w, "Palette: %t\n", r.Palette)
		fmt.Fprintf(w, "Digest: %s\n", r.Digest)
		fmt.Fprintf(w, "Fingerprint: %s\n", r.Fingerprint)
		if r.DuplicateOf != "" {
			fmt.Fprintf(w, "Duplicate of: %s\n", r.DuplicateOf)
		}
		if r.Problem != "" {
			fmt.Fprintf(w, "Problem: %s\n", r.Problem)
		}
		if r.Written != "" {
			fmt.Fprintf(w, "Written: %s\n", r.Written)
		}
		fmt.Fprintln(w)
	}
}

func printYAML(w io.Writer, reports []*report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return enc.Close()
}
