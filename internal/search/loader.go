package search

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SymbolEntry is one row of the symbols file.
type SymbolEntry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// LoadSymbols reads the symbols file, accepting either a JSON array or a
// CSV with symbol, name, sector columns.
func LoadSymbols(path string) ([]SymbolEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var entries []SymbolEntry
		if err := json.NewDecoder(f).Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode symbols file: %w", err)
		}
		return entries, nil
	}

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read symbols file: %w", err)
	}

	var entries []SymbolEntry
	for i, record := range records {
		if len(record) < 2 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "symbol") {
			continue
		}
		entry := SymbolEntry{
			Symbol: strings.TrimSpace(record[0]),
			Name:   strings.TrimSpace(record[1]),
		}
		if len(record) > 2 {
			entry.Sector = strings.TrimSpace(record[2])
		}
		if entry.Symbol == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
