package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Download builders for one seller's slice. Column order is fixed by
// exportColumns; the three formats carry identical rows.

const exportSheet = "Listings"

// listingCells renders one listing into the export column order.
// Price stays typed (float64) so the xlsx writer emits a number cell.
func listingCells(l *Listing) []any {
	var price any
	if l.Price != nil {
		price = *l.Price
	} else {
		price = ""
	}
	return []any{
		l.Title, price, l.Currency, l.Category, l.Condition,
		l.URL, l.Seller, l.Feedback, l.ListedAt,
	}
}

// ExportXLSX builds a spreadsheet of the seller slice.
func ExportXLSX(listings []Listing) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	header := make([]any, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	for i := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := listingCells(&listings[i])
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	// Wide columns for title and URL, sensible defaults elsewhere.
	_ = f.SetColWidth(exportSheet, "A", "A", 48)
	_ = f.SetColWidth(exportSheet, "F", "F", 40)
	_ = f.SetColWidth(exportSheet, "B", "E", 12)
	_ = f.SetColWidth(exportSheet, "G", "I", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCSV renders the slice as UTF-8 CSV with a BOM so Excel opens
// the Japanese fields correctly (the upstream exports do the same).
func ExportCSV(listings []Listing) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bomUTF8)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for i := range listings {
		rec := make([]string, len(exportColumns))
		for j, v := range listingCells(&listings[i]) {
			switch t := v.(type) {
			case float64:
				rec[j] = trimFloat(t)
			case string:
				rec[j] = t
			}
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// trimFloat formats prices without trailing zeros ("12.5", not
// "12.500000").
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// ExportAnalysisJSON renders the analysis document, indented for
// human consumption (it is a download, not an API response).
func ExportAnalysisJSON(a *SellerAnalysis) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// exportFilename builds a safe Content-Disposition filename from the
// seller label.
func exportFilename(seller, suffix string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|', '\n', '\r':
			return '_'
		}
		return r
	}, seller)
	safe = strings.TrimSpace(safe)
	if safe == "" {
		safe = "seller"
	}
	if r := []rune(safe); len(r) > 64 {
		safe = string(r[:64])
	}
	return safe + suffix
}
