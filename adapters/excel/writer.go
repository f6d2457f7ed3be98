// Package excel writes dataset snapshots to CSV and XLSX files and parses
// uploaded table files back into rows.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"rehabengine/domain/dataset"
)

// CombinedWorkbookName is the filename of the all-tables workbook.
const CombinedWorkbookName = "rehabilitation_complete_dataset.xlsx"

// Writer exports snapshot tables to an output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// ExportAll writes every table as CSV and XLSX plus the combined workbook.
// Per-table files are written concurrently; export is idempotent and safe to
// re-run over the same directory.
func (w *Writer) ExportAll(snap *dataset.Snapshot) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	var g errgroup.Group
	for _, name := range dataset.TableNames {
		tbl, ok := snap.Tables[name]
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := WriteCSV(filepath.Join(w.outputDir, tbl.Name+".csv"), tbl); err != nil {
				return fmt.Errorf("csv export of %s: %w", tbl.Name, err)
			}
			if err := WriteXLSX(filepath.Join(w.outputDir, tbl.Name+".xlsx"), tbl); err != nil {
				return fmt.Errorf("xlsx export of %s: %w", tbl.Name, err)
			}
			log.Printf("[Export] Wrote %s (%d rows)", tbl.Name, len(tbl.Rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return w.writeCombinedWorkbook(snap)
}

// RenderCSV renders one table as CSV bytes for download responses.
func RenderCSV(tbl *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(tbl.Headers); err != nil {
		return nil, err
	}
	for _, row := range tbl.Rows {
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderXLSX renders one table as a single-sheet workbook in memory.
func RenderXLSX(tbl *dataset.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Sheet1", tbl); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes one table as a CSV file with a header row.
func WriteCSV(path string, tbl *dataset.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(tbl.Headers); err != nil {
		return err
	}
	for _, row := range tbl.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteXLSX writes one table as a single-sheet workbook.
func WriteXLSX(path string, tbl *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Sheet1", tbl); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// writeCombinedWorkbook puts every table on its own sheet in one file.
func (w *Writer) writeCombinedWorkbook(snap *dataset.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, name := range dataset.TableNames {
		tbl, ok := snap.Tables[name]
		if !ok {
			continue
		}
		sheet := sheetName(tbl.Name)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sheet, tbl); err != nil {
			return err
		}
	}

	path := filepath.Join(w.outputDir, CombinedWorkbookName)
	if err := f.SaveAs(path); err != nil {
		return err
	}
	log.Printf("[Export] Wrote combined workbook %s", path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, tbl *dataset.Table) error {
	for i, h := range tbl.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range tbl.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName enforces the 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
