// Package xlsx reads workbook snapshots from XLSX files, either on local disk
// or stored as objects in the configured bucket.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"sheet-graph/core/sheet"
	"sheet-graph/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
)

type opener func(ctx context.Context, id string) (io.ReadCloser, error)

// Source reads XLSX workbooks through an opener.
type Source struct {
	name string
	open opener
}

// NewFileSource reads workbooks from the local filesystem; the id is a path.
func NewFileSource() *Source {
	return &Source{
		name: "xlsx-file",
		open: func(_ context.Context, path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// NewObjectSource reads workbooks from object storage; the id is the object name.
func NewObjectSource(client storage.Client, bucket string) *Source {
	return &Source{
		name: "xlsx-object",
		open: func(ctx context.Context, object string) (io.ReadCloser, error) {
			return client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
		},
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Fetch opens and parses the workbook identified by id.
func (s *Source) Fetch(ctx context.Context, id string) (*sheet.Workbook, error) {
	rc, err := s.open(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", id, err)
	}
	defer rc.Close()

	wb, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook %s: %w", id, err)
	}
	wb.ID = id
	return wb, nil
}

// Read parses an XLSX stream. Formula cells without a cached value are
// calculated so that every formula cell carries a formatted value.
func Read(r io.Reader) (*sheet.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &sheet.Workbook{}
	for _, name := range f.GetSheetList() {
		s, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, s)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (sheet.Sheet, error) {
	s := sheet.Sheet{Title: name}
	if s.Title == "" {
		s.Title = sheet.UntitledSheet
	}

	values, err := f.GetRows(name)
	if err != nil {
		return s, err
	}

	// GetRows trims trailing empty cells, so formulas are probed up to the
	// widest row seen.
	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}

	s.Rows = make([]sheet.Row, len(values))
	for i, raw := range values {
		row := make(sheet.Row, 0, width)
		for j := 0; j < width; j++ {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return s, err
			}

			var value string
			if j < len(raw) {
				value = raw[j]
			}

			expr, err := f.GetCellFormula(name, cellName)
			if err != nil {
				return s, err
			}
			if expr != "" && !strings.HasPrefix(expr, "=") {
				expr = "=" + expr
			}
			if expr != "" && value == "" {
				if calc, err := f.CalcCellValue(name, cellName); err == nil {
					value = calc
				}
			}

			row = append(row, sheet.NewCell(value, expr))
		}
		s.Rows[i] = trim(row)
	}
	return s, nil
}

// trim drops trailing cells that carry neither a value nor a formula.
func trim(row sheet.Row) sheet.Row {
	n := len(row)
	for n > 0 && row[n-1].Value == nil && row[n-1].Formula == nil {
		n--
	}
	return row[:n]
}
