package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Listing is one row of an uploaded marketplace export. Fields are
// loosely typed on purpose: price may be missing, listed_at is a
// best-effort normalized string (raw text is kept when unparseable).
type Listing struct {
	Title     string   `json:"title"`
	Price     *float64 `json:"price"`
	Currency  string   `json:"currency,omitempty"`
	Category  string   `json:"category,omitempty"`
	Condition string   `json:"condition,omitempty"`
	URL       string   `json:"url,omitempty"`
	Seller    string   `json:"seller"`
	Feedback  string   `json:"feedback,omitempty"`
	ListedAt  string   `json:"listed_at,omitempty"`
}

// Dataset is one parsed upload. Lives in memory only, evicted by TTL.
type Dataset struct {
	ID           string            `json:"id"`
	Filename     string            `json:"filename"`
	Encoding     string            `json:"encoding"`
	Delimiter    string            `json:"delimiter"`
	Columns      map[string]string `json:"columns"` // canonical -> original header
	Listings     []Listing         `json:"-"`
	TotalRows    int               `json:"total_rows"`
	SkippedRows  int               `json:"skipped_rows"`
	UnpricedRows int               `json:"unpriced_rows"`
	UploadedAt   time.Time         `json:"uploaded_at"`
}

// Canonical column names recognized by the normalizer.
const (
	colTitle     = "title"
	colPrice     = "price"
	colCurrency  = "currency"
	colCategory  = "category"
	colCondition = "condition"
	colURL       = "url"
	colSeller    = "seller"
	colFeedback  = "feedback"
	colListedAt  = "listed_at"
)

// exportColumns is the fixed column order for tables and downloads.
var exportColumns = []string{
	colTitle, colPrice, colCurrency, colCategory, colCondition,
	colURL, colSeller, colFeedback, colListedAt,
}

// columnKeywords maps canonical columns to header spellings seen in the
// wild. Exports come from a Japanese marketplace scraper, so the
// Japanese headers are first-class, not an afterthought. Order matters:
// earlier canonicals claim ambiguous headers first (e.g. a
// "seller feedback" header must resolve to feedback via exact match
// before the substring pass lets "seller" grab it).
var columnKeywords = []struct {
	canon string
	keys  []string
}{
	{colSeller, []string{"出品者", "seller", "seller name", "store", "shop"}},
	{colTitle, []string{"商品名", "title", "item title", "product name", "name", "item"}},
	{colPrice, []string{"価格", "金額", "price", "item price", "amount"}},
	{colCurrency, []string{"通貨", "currency"}},
	{colCategory, []string{"カテゴリー", "カテゴリ", "category"}},
	{colCondition, []string{"状態", "コンディション", "condition"}},
	{colURL, []string{"url", "link", "リンク", "商品url"}},
	{colFeedback, []string{"フィードバック", "評価", "feedback", "seller feedback", "rating"}},
	{colListedAt, []string{"出品日時", "出品日", "listed_at", "listed at", "listed", "list date", "date", "日時"}},
}

var (
	errNoHeader    = errors.New("csv file has no header row")
	errNoSeller    = errors.New("no seller column recognized in header")
	errNoTitle     = errors.New("no title column recognized in header")
	errEmptyUpload = errors.New("uploaded file is empty")
)

// -------- Encoding detection --------

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeToUTF8 converts raw upload bytes to UTF-8, best effort.
// Candidates in order: BOM-marked UTF-8/UTF-16, plain UTF-8, Shift_JIS,
// Windows-1252. A failed candidate means "try the next one"; the final
// fallback never fails, so CSV structure is the only hard error left.
func decodeToUTF8(raw []byte) ([]byte, string) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return bytes.TrimPrefix(raw, bomUTF8), "utf-8-sig"
	case bytes.HasPrefix(raw, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil {
			return out, "utf-16le"
		}
	case bytes.HasPrefix(raw, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil {
			return out, "utf-16be"
		}
	}

	if utf8.Valid(raw) {
		return raw, "utf-8"
	}

	// Shift_JIS is the usual suspect for non-UTF-8 marketplace exports.
	// The decoder substitutes U+FFFD on bad sequences, so reject the
	// result when replacement characters show up.
	if out, err := japanese.ShiftJIS.NewDecoder().Bytes(raw); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
		return out, "shift_jis"
	}

	out, _ := charmap.Windows1252.NewDecoder().Bytes(raw)
	return out, "windows-1252"
}

// sniffDelimiter picks the separator by counting candidates in the
// header line. Comma wins ties (the overwhelmingly common case).
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte(","))
	for _, cand := range []struct {
		r rune
		b byte
	}{{';', ';'}, {'\t', '\t'}} {
		if n := bytes.Count(line, []byte{cand.b}); n > bestCount {
			best, bestCount = cand.r, n
		}
	}
	return best
}

// -------- Header normalization --------

// normalizeColumns maps raw header cells to canonical columns.
// Two passes: exact keyword match first, then substring match for
// decorated headers like "Item Price (USD)". First assignment per
// canonical wins; unrecognized headers are simply ignored.
func normalizeColumns(header []string) map[string]int {
	cleaned := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, string(bomUTF8))
		cleaned[i] = strings.ToLower(strings.TrimSpace(h))
	}

	assigned := make(map[string]int)
	usedCol := make(map[int]bool)

	// Pass 1: exact match
	for _, ck := range columnKeywords {
		if _, ok := assigned[ck.canon]; ok {
			continue
		}
		for i, h := range cleaned {
			if usedCol[i] || h == "" {
				continue
			}
			for _, key := range ck.keys {
				if h == key {
					assigned[ck.canon] = i
					usedCol[i] = true
					break
				}
			}
			if _, ok := assigned[ck.canon]; ok {
				break
			}
		}
	}

	// Pass 2: substring match
	for _, ck := range columnKeywords {
		if _, ok := assigned[ck.canon]; ok {
			continue
		}
		for i, h := range cleaned {
			if usedCol[i] || h == "" {
				continue
			}
			for _, key := range ck.keys {
				if strings.Contains(h, key) {
					assigned[ck.canon] = i
					usedCol[i] = true
					break
				}
			}
			if _, ok := assigned[ck.canon]; ok {
				break
			}
		}
	}

	return assigned
}

// -------- Value coercion --------

// priceStrip removes currency decoration so ParseFloat gets a number.
var priceStripper = strings.NewReplacer(
	"$", "", "¥", "", "€", "", "£", "", "￥", "",
	"usd", "", "jpy", "", "eur", "", "gbp", "", "us", "",
	",", "", " ", "", " ", "",
)

// parsePrice coerces loose price text to a float. Anything that does
// not survive stripping is a missing value, never an error.
func parsePrice(s string) *float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "n/a" || s == "-" || s == "nan" {
		return nil
	}
	s = priceStripper.Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// listedAtLayouts are tried in order; the first hit is normalized to
// "2006-01-02 15:04:05", which sorts lexically.
var listedAtLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006年01月02日 15:04",
	"2006年01月02日",
}

const normalizedTimeLayout = "2006-01-02 15:04:05"

func parseListedAt(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range listedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(normalizedTimeLayout)
		}
	}
	// Keep raw text rather than dropping the field.
	return s
}

// -------- Parsing --------

// ParseCSV turns an uploaded CSV into a Dataset. All recoverable
// problems (bad encodings, ragged rows, junk prices) degrade
// gracefully; only a missing header, missing seller/title column, or a
// completely empty file is an error the caller shows to the user.
func ParseCSV(filename string, r io.Reader) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errEmptyUpload
	}

	data, encName := decodeToUTF8(raw)
	delim := sniffDelimiter(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, errNoHeader
	}

	cols := normalizeColumns(header)
	if _, ok := cols[colSeller]; !ok {
		return nil, errNoSeller
	}
	if _, ok := cols[colTitle]; !ok {
		return nil, errNoTitle
	}

	ds := &Dataset{
		ID:         uuid.NewString(),
		Filename:   filename,
		Encoding:   encName,
		Delimiter:  string(delim),
		Columns:    make(map[string]string, len(cols)),
		UploadedAt: time.Now().UTC(),
	}
	for canon, idx := range cols {
		ds.Columns[canon] = strings.TrimPrefix(strings.TrimSpace(header[idx]), string(bomUTF8))
	}

	field := func(rec []string, canon string) string {
		idx, ok := cols[canon]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.Reader with FieldsPerRecord=-1 still errors on bare
			// quotes etc.; count and move on.
			ds.SkippedRows++
			continue
		}
		ds.TotalRows++

		l := Listing{
			Title:     field(rec, colTitle),
			Currency:  field(rec, colCurrency),
			Category:  field(rec, colCategory),
			Condition: field(rec, colCondition),
			URL:       field(rec, colURL),
			Seller:    field(rec, colSeller),
			Feedback:  field(rec, colFeedback),
			ListedAt:  parseListedAt(field(rec, colListedAt)),
			Price:     parsePrice(field(rec, colPrice)),
		}

		// A row with neither seller nor title is noise, not data.
		if l.Seller == "" && l.Title == "" {
			ds.SkippedRows++
			ds.TotalRows--
			continue
		}
		if l.Price == nil {
			ds.UnpricedRows++
		}
		ds.Listings = append(ds.Listings, l)
	}

	if len(ds.Listings) == 0 {
		return nil, errEmptyUpload
	}
	return ds, nil
}
