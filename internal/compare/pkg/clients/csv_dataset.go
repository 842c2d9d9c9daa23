package clients

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"gocompare_api/internal/compare/business/models"
)

// csvColumns maps the headers of shop panel exports onto raw item keys.
var csvColumns = map[string]string{
	"ürün adı":        "name",
	"ürün":            "name",
	"başlık":          "title",
	"marka":           "brand",
	"fiyat":           "price",
	"satış fiyatı":    "salePrice",
	"indirimli fiyat": "discountedPrice",
	"liste fiyatı":    "listPrice",
	"link":            "url",
	"ürün linki":      "url",
	"görsel":          "image",
	"resim":           "image",
	"puan":            "stars",
	"yorum sayısı":    "reviewCount",
	"açıklama":        "description",
	"stok kodu":       "sku",
}

// ReadCSVItems decodes a shop export with a header row into raw items.
// Exports saved by Turkish Excel arrive as Windows-1254 with ';' separators;
// both that and UTF-8 with ',' are accepted.
func ReadCSVItems(r io.Reader) ([]models.RawItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var reader io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		reader = transform.NewReader(reader, charmap.Windows1254.NewDecoder())
	}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = sniffComma(data)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv data is empty")
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = columnKey(col)
	}

	items := make([]models.RawItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		item := models.RawItem{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				item[header[i]] = cell
			}
		}
		if len(item) > 0 {
			items = append(items, item)
		}
	}
	return items, nil
}

func columnKey(header string) string {
	h := strings.TrimSpace(header)
	if key, ok := csvColumns[cases.Lower(language.Turkish).String(h)]; ok {
		return key
	}
	return h
}

func sniffComma(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
