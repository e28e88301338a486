package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

func TestNormalizeColumnsJapanese(t *testing.T) {
	header := []string{"商品名", "価格", "カテゴリー", "URL", "出品者", "出品日時", "フィードバック"}
	cols := normalizeColumns(header)

	assert.Equal(t, 0, cols[colTitle])
	assert.Equal(t, 1, cols[colPrice])
	assert.Equal(t, 2, cols[colCategory])
	assert.Equal(t, 3, cols[colURL])
	assert.Equal(t, 4, cols[colSeller])
	assert.Equal(t, 5, cols[colListedAt])
	assert.Equal(t, 6, cols[colFeedback])
}

func TestNormalizeColumnsDecoratedEnglish(t *testing.T) {
	header := []string{"Item Title", "Item Price (USD)", "Category ", "Seller Name", "Listing Date"}
	cols := normalizeColumns(header)

	assert.Equal(t, 0, cols[colTitle])
	assert.Equal(t, 1, cols[colPrice])
	assert.Equal(t, 2, cols[colCategory])
	assert.Equal(t, 3, cols[colSeller])
	assert.Equal(t, 4, cols[colListedAt])
}

func TestNormalizeColumnsExactBeatsSubstring(t *testing.T) {
	// "seller feedback" must resolve to feedback, leaving "seller" for
	// the seller column, even though both contain "seller".
	header := []string{"seller feedback", "seller", "title", "price"}
	cols := normalizeColumns(header)

	assert.Equal(t, 0, cols[colFeedback])
	assert.Equal(t, 1, cols[colSeller])
}

func TestNormalizeColumnsFirstAssignmentWins(t *testing.T) {
	header := []string{"price", "price", "title", "seller"}
	cols := normalizeColumns(header)
	assert.Equal(t, 0, cols[colPrice])
}

func TestDecodeToUTF8(t *testing.T) {
	plain := []byte("出品者,価格\nseller_a,100\n")

	t.Run("utf-8 bom", func(t *testing.T) {
		raw := append(append([]byte{}, bomUTF8...), plain...)
		out, name := decodeToUTF8(raw)
		assert.Equal(t, "utf-8-sig", name)
		assert.Equal(t, plain, out)
	})

	t.Run("plain utf-8", func(t *testing.T) {
		out, name := decodeToUTF8(plain)
		assert.Equal(t, "utf-8", name)
		assert.Equal(t, plain, out)
	})

	t.Run("shift_jis", func(t *testing.T) {
		raw, err := japanese.ShiftJIS.NewEncoder().Bytes(plain)
		require.NoError(t, err)
		out, name := decodeToUTF8(raw)
		assert.Equal(t, "shift_jis", name)
		assert.Equal(t, string(plain), string(out))
	})

	t.Run("utf-16le with bom", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		raw, err := enc.Bytes(plain)
		require.NoError(t, err)
		out, name := decodeToUTF8(raw)
		assert.Equal(t, "utf-16le", name)
		assert.Equal(t, string(plain), string(out))
	})

	t.Run("windows-1252 fallback", func(t *testing.T) {
		// 0x93/0x94 are curly quotes in Windows-1252 and invalid as a
		// standalone UTF-8 sequence; 0x80 stops Shift_JIS from claiming it.
		raw := []byte{'p', 'r', 0x80, 'i', 'c', 'e', 0x93, 0x94}
		_, name := decodeToUTF8(raw)
		assert.Equal(t, "windows-1252", name)
	})
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b,c\n1,2,3")))
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1;2;3")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\tc")))
	// Comma wins ties.
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b;c")))
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"19.99", f(19.99)},
		{"$19.99", f(19.99)},
		{"¥1,500", f(1500)},
		{"1 234.50", f(1234.5)},
		{"USD 42", f(42)},
		{"US $12.34", f(12.34)},
		{"", nil},
		{"N/A", nil},
		{"-", nil},
		{"ask", nil},
		{"-5", nil},
	}
	for _, c := range cases {
		got := parsePrice(c.in)
		if c.want == nil {
			assert.Nil(t, got, "input %q", c.in)
		} else {
			require.NotNil(t, got, "input %q", c.in)
			assert.InDelta(t, *c.want, *got, 0.001, "input %q", c.in)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestParseListedAt(t *testing.T) {
	assert.Equal(t, "2024-03-15 09:30:00", parseListedAt("2024/03/15 09:30"))
	assert.Equal(t, "2024-03-15 00:00:00", parseListedAt("2024-03-15"))
	assert.Equal(t, "2024-03-15 09:30:00", parseListedAt("2024年03月15日 09:30"))
	// Unparseable text is kept as-is.
	assert.Equal(t, "around noon", parseListedAt("around noon"))
	assert.Equal(t, "", parseListedAt("  "))
}

func TestParseCSV(t *testing.T) {
	csvData := "商品名,価格,カテゴリー,URL,出品者,出品日時,フィードバック\n" +
		"Vintage Camera,$120.00,Cameras,https://example.com/1,tokyo_deals,2024-03-01 10:00:00,1520\n" +
		"Lens Cap,$4.50,Cameras,https://example.com/2,tokyo_deals,2024-03-02 11:00:00,1520\n" +
		"Broken Radio,ask,Audio,https://example.com/3,gadget_barn,2024-03-03 12:00:00,88\n" +
		",,,,,,\n"

	ds, err := ParseCSV("listings.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, "listings.csv", ds.Filename)
	assert.Equal(t, "utf-8", ds.Encoding)
	assert.Equal(t, ",", ds.Delimiter)
	assert.Equal(t, 3, ds.TotalRows)
	assert.Equal(t, 1, ds.SkippedRows)
	assert.Equal(t, 1, ds.UnpricedRows)
	assert.Len(t, ds.Listings, 3)
	assert.NotEmpty(t, ds.ID)

	assert.Equal(t, "商品名", ds.Columns[colTitle])
	assert.Equal(t, "出品者", ds.Columns[colSeller])

	first := ds.Listings[0]
	assert.Equal(t, "Vintage Camera", first.Title)
	assert.Equal(t, "tokyo_deals", first.Seller)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 120.0, *first.Price, 0.001)
	assert.Nil(t, ds.Listings[2].Price)
}

func TestParseCSVShiftJISSemicolon(t *testing.T) {
	utf := "商品名;価格;出品者\nレトロゲーム機;￥5,800;retro_import_jp\n"
	raw, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(utf))
	require.NoError(t, err)

	ds, err := ParseCSV("sjis.csv", strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, "shift_jis", ds.Encoding)
	assert.Equal(t, ";", ds.Delimiter)
	require.Len(t, ds.Listings, 1)
	assert.Equal(t, "レトロゲーム機", ds.Listings[0].Title)
	require.NotNil(t, ds.Listings[0].Price)
	assert.InDelta(t, 5800.0, *ds.Listings[0].Price, 0.001)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV("x.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, errEmptyUpload)

	_, err = ParseCSV("x.csv", strings.NewReader("title,price\nno seller column,1\n"))
	assert.ErrorIs(t, err, errNoSeller)

	_, err = ParseCSV("x.csv", strings.NewReader("seller,price\nno title column,1\n"))
	assert.ErrorIs(t, err, errNoTitle)

	// Header only, no data rows.
	_, err = ParseCSV("x.csv", strings.NewReader("title,seller,price\n"))
	assert.ErrorIs(t, err, errEmptyUpload)
}
