package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadOptions configures how files are turned into rows.
type LoadOptions struct {
	// Sheet selects the worksheet of spreadsheet inputs. The first sheet is
	// used if empty.
	Sheet string
	// DateField names the column holding each row's date. Spreadsheet
	// date cells in it are converted to time.Time. DefaultDateField is
	// used if empty.
	DateField string
}

func (o LoadOptions) dateField() string {
	if o.DateField == "" {
		return DefaultDateField
	}
	return o.DateField
}

// Format identifies a tabular file format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatFor guesses the format of the named file from its extension.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// LoadFile reads all rows from the file at path.
func LoadFile(path string, opts LoadOptions) ([]RawRow, error) {
	format := FormatFor(path)
	if format == FormatUnknown {
		return nil, &LoadError{Source: path, Err: ErrUnsupportedFormat}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	rows, err := Load(f, format, opts)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return rows, nil
}

// Load reads all rows in the given format from r.
func Load(r io.Reader, format Format, opts LoadOptions) ([]RawRow, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r, opts)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func newCSVReader(r io.Reader) *csv.Reader {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	return csvReader
}

// ReadCSV reads rows from CSV data whose first record names the columns.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	csvReader := newCSVReader(r)
	headings, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("failed reading csv headings: %w", err)
	}
	headings = cleanHeadings(headings)
	var rows []RawRow
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return rows, fmt.Errorf("failed reading csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rowFromFields(headings, rec))
	}
}

// ReadXLSX reads rows from an xlsx workbook. The first row of the sheet
// names the columns. Cells are read as stored rather than as displayed, so
// date cells in the date column arrive as time.Time.
func ReadXLSX(r io.Reader, opts LoadOptions) (rows []RawRow, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}
	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed reading sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return nil, ErrNoHeader
	}
	headings := cleanHeadings(grid[0])
	dateField := opts.dateField()
	dateCol := slices.Index(headings, dateField)
	rows = make([]RawRow, 0, len(grid)-1)
	for _, rec := range grid[1:] {
		row := rowFromFields(headings, rec)
		if dateCol >= 0 && dateCol < len(rec) {
			if t, ok := serialDate(rec[dateCol], date1904); ok {
				row[dateField] = t
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// serialDate converts the stored value of a spreadsheet date cell, a day
// count since the workbook's epoch.
func serialDate(raw string, date1904 bool) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func cleanHeadings(headings []string) []string {
	out := make([]string, len(headings))
	for i, h := range headings {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// rowFromFields pairs fields with their headings. Short records leave the
// trailing columns missing; surplus fields are dropped.
func rowFromFields(headings, fields []string) RawRow {
	row := make(RawRow, len(headings))
	for i, heading := range headings {
		if i >= len(fields) {
			break
		}
		if heading == "" {
			continue
		}
		row[heading] = fields[i]
	}
	return row
}
