package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

// LayoutSheet is the name of the worksheet written by WriteLayout.
const LayoutSheet = "Layout"

// WriteLayout writes the stacked layout as a workbook with one row per
// record: its date, followed by the baseline and top of every layer.
func WriteLayout(w io.Writer, records []backend.Record, layers []plot.StackedLayer) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := f.SetSheetName(f.GetSheetName(0), LayoutSheet); err != nil {
		return fmt.Errorf("failed naming sheet: %w", err)
	}
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(LayoutSheet, cell, v)
	}
	if err := set(1, 1, backend.DefaultDateField); err != nil {
		return err
	}
	for i, l := range layers {
		if err := set(2+2*i, 1, l.Series+" baseline"); err != nil {
			return err
		}
		if err := set(3+2*i, 1, l.Series+" top"); err != nil {
			return err
		}
	}
	for j, rec := range records {
		row := j + 2
		date := ""
		if rec.Valid {
			date = rec.Timestamp.Format("2006-01-02")
		}
		if err := set(1, row, date); err != nil {
			return err
		}
		for i, l := range layers {
			if j >= len(l.Points) {
				continue
			}
			if err := set(2+2*i, row, l.Points[j].Baseline); err != nil {
				return err
			}
			if err := set(3+2*i, row, l.Points[j].Top); err != nil {
				return err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed encoding workbook: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed writing workbook: %w", err)
	}
	return nil
}
