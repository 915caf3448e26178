package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"SwingScope/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return lgr
}

func testSymbols() []SymbolEntry {
	return []SymbolEntry{
		{Symbol: "NTPC.NS", Name: "NTPC Limited", Sector: "Power"},
		{Symbol: "POWERGRID.NS", Name: "Power Grid Corporation of India", Sector: "Power"},
		{Symbol: "TCS.NS", Name: "Tata Consultancy Services", Sector: "IT"},
	}
}

func TestEngineSearchBySymbol(t *testing.T) {
	eng, err := NewEngine(testLogger(t), filepath.Join(t.TempDir(), "idx"), testSymbols())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer eng.Close()

	matches, err := eng.Search(context.Background(), "ntpc", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].Symbol != "NTPC.NS" {
		t.Fatalf("expected NTPC.NS first, got %q", matches[0].Symbol)
	}
	if matches[0].Sector != "Power" {
		t.Fatalf("expected sector Power, got %q", matches[0].Sector)
	}
}

func TestEngineSearchByName(t *testing.T) {
	eng, err := NewEngine(testLogger(t), filepath.Join(t.TempDir(), "idx"), testSymbols())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer eng.Close()

	matches, err := eng.Search(context.Background(), "consultancy", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].Symbol != "TCS.NS" {
		t.Fatalf("expected TCS.NS first, got %q", matches[0].Symbol)
	}
}

func TestEngineEmptyQuery(t *testing.T) {
	eng, err := NewEngine(testLogger(t), filepath.Join(t.TempDir(), "idx"), testSymbols())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer eng.Close()

	if _, err := eng.Search(context.Background(), "", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestLoadSymbolsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.csv")
	data := "symbol,name,sector\nNTPC.NS,NTPC Limited,Power\nTCS.NS,Tata Consultancy Services,IT\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := LoadSymbols(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Symbol != "NTPC.NS" || entries[0].Sector != "Power" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
}

func TestLoadSymbolsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.json")
	data := `[{"symbol":"NTPC.NS","name":"NTPC Limited","sector":"Power"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := LoadSymbols(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "NTPC Limited" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}
