package clients

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gocompare_api/internal/compare/business/models"
)

// ReadItems decodes a JSON array of raw marketplace items. Numbers are kept
// as json.Number so large marketplace ids survive.
func ReadItems(r io.Reader) ([]models.RawItem, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var items []models.RawItem
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// LoadItemsFile reads an exported dataset from disk: a JSON array, or a CSV
// shop export when the file ends in .csv.
func LoadItemsFile(path string) ([]models.RawItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSVItems(f)
	}
	return ReadItems(f)
}
