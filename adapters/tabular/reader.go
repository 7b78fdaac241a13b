package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"drawcast/domain/draw"
	"drawcast/internal/errors"
	"drawcast/ports"
)

// Accepted layouts for the date column.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Reader loads historical draws from a CSV or XLSX file. The file type is
// dispatched on extension. Rows outside the configured weekdays are
// dropped here so the core never sees them, and the star gap is derived
// during the scan.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	weekdays map[time.Weekday]bool
	mainMax  int
	starMax  int
}

var _ ports.DrawSource = (*Reader)(nil)

// NewReader creates a reader for the given file, keeping only draws that
// fall on the listed weekdays.
func NewReader(filePath string, weekdays []time.Weekday, mainMax, starMax int) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	days := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		days[d] = true
	}
	return &Reader{
		filePath: filePath,
		fileType: fileType,
		weekdays: days,
		mainMax:  mainMax,
		starMax:  starMax,
	}
}

// Load reads, filters and validates the draw history.
func (r *Reader) Load(ctx context.Context) (draw.History, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.DataError("data file must have a header row and at least one data row")
	}

	return r.processRows(ctx, rows)
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return rows, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Sheet1")
	}
	return rows, nil
}

// processRows maps raw string rows to validated draws. The header row is
// used to locate the Date and P1..P7 columns so column order in the file
// does not matter.
func (r *Reader) processRows(ctx context.Context, rows [][]string) (draw.History, error) {
	cols, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	history := make(draw.History, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isBlank(row) {
			continue
		}

		d, err := r.parseRow(row, cols)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d of %s", i+2, r.filePath)
		}
		if !r.weekdays[d.Date.Weekday()] {
			continue
		}
		if err := d.Validate(r.mainMax, r.starMax); err != nil {
			return nil, errors.Wrapf(err, "row %d of %s", i+2, r.filePath)
		}
		history = append(history, d)
	}
	return history, nil
}

// columnIndex maps the logical fields to their positions in the file.
type columnIndex struct {
	date  int
	slots [7]int // P1..P7
}

func locateColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1}
	for i := range idx.slots {
		idx.slots[i] = -1
	}

	for i, name := range header {
		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "DATE", "DRAWDATE", "DRAW_DATE":
			idx.date = i
		case "P1", "P2", "P3", "P4", "P5", "P6", "P7":
			n := int(strings.ToUpper(strings.TrimSpace(name))[1] - '0')
			idx.slots[n-1] = i
		}
	}

	if idx.date == -1 {
		return idx, errors.DataError("missing Date column")
	}
	for i, pos := range idx.slots {
		if pos == -1 {
			return idx, errors.DataError(fmt.Sprintf("missing P%d column", i+1))
		}
	}
	return idx, nil
}

func (r *Reader) parseRow(row []string, cols columnIndex) (draw.Draw, error) {
	var d draw.Draw

	date, err := parseDate(cell(row, cols.date))
	if err != nil {
		return d, err
	}
	d.Date = date

	for i, pos := range cols.slots {
		v, err := strconv.Atoi(strings.TrimSpace(cell(row, pos)))
		if err != nil {
			return d, errors.DataError(fmt.Sprintf("P%d is not an integer: %q", i+1, cell(row, pos)))
		}
		if i < draw.MainSlots {
			d.Mains[i] = v
		} else {
			d.Stars[i-draw.MainSlots] = v
		}
	}

	// Feature derivation: the star gap consumed by the gap table.
	d.StarGap = d.Stars[1] - d.Stars[0]
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.DataError(fmt.Sprintf("unparseable date: %q", s))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
