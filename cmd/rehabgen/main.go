// Command rehabgen generates a synthetic prison rehabilitation dataset and
// writes it to disk without starting the service.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rehabengine/adapters/excel"
	"rehabengine/domain/dataset"
	"rehabengine/internal/synth"
)

func main() {
	out := flag.String("out", "./data", "output directory")
	inmates := flag.Int("inmates", 1000, "number of inmates")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	format := flag.String("format", "all", "output format: csv, xlsx, or all")
	flag.Parse()

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	switch fmtName {
	case "csv", "xlsx", "all":
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}

	cfg := synth.DefaultConfig()
	cfg.Inmates = *inmates
	cfg.Seed = *seed

	gen, err := synth.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	snap, err := gen.GenerateAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating dataset:", err)
		os.Exit(1)
	}

	if err := write(snap, *out, fmtName); err != nil {
		fmt.Fprintln(os.Stderr, "error writing dataset:", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d inmates (seed %d) into %s\n", snap.InmateCount, snap.Seed, *out)
	for _, name := range dataset.TableNames {
		if t, ok := snap.Tables[name]; ok {
			fmt.Printf("  %-22s %6d rows\n", name, t.RowCount())
		}
	}
}

func write(snap *dataset.Snapshot, out, fmtName string) error {
	if fmtName == "all" {
		return excel.NewWriter(out).ExportAll(snap)
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for _, name := range dataset.TableNames {
		tbl, ok := snap.Tables[name]
		if !ok {
			continue
		}
		path := filepath.Join(out, name+"."+fmtName)
		var err error
		if fmtName == "csv" {
			err = excel.WriteCSV(path, tbl)
		} else {
			err = excel.WriteXLSX(path, tbl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
