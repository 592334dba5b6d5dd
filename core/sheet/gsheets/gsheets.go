// Package gsheets reads spreadsheet snapshots from the Google Sheets API v4.
//
// Fetch requests the full grid (includeGridData) and converts the first grid
// range of every sheet into the sheet model: formattedValue becomes the cell
// value and userEnteredValue.formulaValue the formula.
package gsheets

import (
	"context"
	"fmt"

	"sheet-graph/core/sheet"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config holds configuration for the Google Sheets source.
type Config struct {
	// APIKey authenticates requests for publicly shared spreadsheets.
	APIKey string `mapstructure:"api_key" default:""`
	// CredentialsFile is a service account key file; it takes precedence over APIKey.
	CredentialsFile string `mapstructure:"credentials_file" default:""`
	// Endpoint overrides the API base URL.
	Endpoint string `mapstructure:"endpoint" default:""`
}

// Source fetches workbooks from Google Sheets.
type Source struct {
	svc *sheets.Service
}

// NewSource creates a Sheets API client for the configured credentials.
func NewSource(ctx context.Context, cfg Config) (*Source, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &Source{svc: svc}, nil
}

// Name returns the source name.
func (s *Source) Name() string {
	return "google-sheets"
}

// Fetch downloads the spreadsheet with grid data.
func (s *Source) Fetch(ctx context.Context, id string) (*sheet.Workbook, error) {
	resp, err := s.svc.Spreadsheets.Get(id).IncludeGridData(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet %s: %w", id, err)
	}
	return Convert(id, resp), nil
}

// Convert maps an API spreadsheet onto the sheet model.
func Convert(id string, resp *sheets.Spreadsheet) *sheet.Workbook {
	wb := &sheet.Workbook{ID: id}
	if resp == nil {
		return wb
	}

	for _, sh := range resp.Sheets {
		if sh == nil {
			continue
		}
		s := sheet.Sheet{Title: sheet.UntitledSheet}
		if sh.Properties != nil && sh.Properties.Title != "" {
			s.Title = sh.Properties.Title
		}

		if len(sh.Data) > 0 && sh.Data[0] != nil {
			rows := sh.Data[0].RowData
			s.Rows = make([]sheet.Row, len(rows))
			for i, rd := range rows {
				if rd == nil {
					continue
				}
				row := make(sheet.Row, len(rd.Values))
				for j, cd := range rd.Values {
					if cd == nil {
						continue
					}
					var formula string
					if cd.UserEnteredValue != nil && cd.UserEnteredValue.FormulaValue != nil {
						formula = *cd.UserEnteredValue.FormulaValue
					}
					row[j] = sheet.NewCell(cd.FormattedValue, formula)
				}
				s.Rows[i] = row
			}
		}

		wb.Sheets = append(wb.Sheets, s)
	}
	return wb
}
