package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []Listing {
	return []Listing{
		{Title: "Camera A", Price: f(120), Currency: "USD", Category: "Cameras", Condition: "Used", URL: "https://example.com/1", Seller: "tokyo_deals", Feedback: "1520", ListedAt: "2024-03-01 10:00:00"},
		{Title: "Mystery Box", Price: nil, Category: "Other", Seller: "tokyo_deals"},
	}
}

func TestExportCSV(t *testing.T) {
	blob, err := ExportCSV(exportFixture())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(blob, bomUTF8), "CSV must carry a UTF-8 BOM for Excel")

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(blob, bomUTF8)))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, "Camera A", rows[1][0])
	assert.Equal(t, "120", rows[1][1])
	// Missing price renders as an empty cell, not "0".
	assert.Equal(t, "", rows[2][1])
}

func TestExportXLSX(t *testing.T) {
	blob, err := ExportXLSX(exportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "title", rows[0][0])
	assert.Equal(t, "Camera A", rows[1][0])
	assert.Equal(t, "120", rows[1][1])
}

func TestExportAnalysisJSON(t *testing.T) {
	ds := fixtureDataset()
	a, err := AnalyzeSeller(ds, "tokyo_deals")
	require.NoError(t, err)

	blob, err := ExportAnalysisJSON(a)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(blob, &doc))
	assert.Equal(t, "tokyo_deals", doc["seller"])
	assert.Contains(t, doc, "basic_stats")
	assert.Contains(t, doc, "category_analysis")
	assert.Contains(t, doc, "price_buckets")
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "12.5", trimFloat(12.5))
	assert.Equal(t, "120", trimFloat(120))
	assert.Equal(t, "0.99", trimFloat(0.99))
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "tokyo_deals_products.csv", exportFilename("tokyo_deals", "_products.csv"))
	assert.Equal(t, "a_b_c.json", exportFilename(`a/b`, "_c.json"))
	assert.Equal(t, "seller.csv", exportFilename("   ", ".csv"))

	long := exportFilename(strings.Repeat("x", 100), ".csv")
	assert.Len(t, long, 64+len(".csv"))
}
