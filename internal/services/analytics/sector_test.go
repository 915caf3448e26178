package analytics

import (
	"testing"

	"SwingScope/internal/domain/models"
)

func TestCompareSectorConcerns(t *testing.T) {
	stock := &models.Fundamentals{
		PERatio:      fptr(30),
		DebtToEquity: fptr(2.5),
		ROE:          fptr(0.05),
	}
	peers := map[string]*models.Fundamentals{
		"PEER1": {PERatio: fptr(15), DebtToEquity: fptr(0.8), ROE: fptr(0.18)},
		"PEER2": {PERatio: fptr(18), DebtToEquity: fptr(1.1), ROE: fptr(0.15)},
		"PEER3": {PERatio: fptr(22), DebtToEquity: fptr(0.9), ROE: fptr(0.12)},
	}

	cmp := CompareSector("power", stock, peers)
	if len(cmp.Concerns) != 3 {
		t.Fatalf("expected 3 concerns, got %v", cmp.Concerns)
	}

	pe, ok := cmp.Metrics[MetricPE]
	if !ok {
		t.Fatalf("missing pe metric")
	}
	if pe.SectorMedian != 18 {
		t.Fatalf("unexpected median %v", pe.SectorMedian)
	}
	if pe.Percentile != 1.0 {
		t.Fatalf("all peers below stock, percentile should be 1, got %v", pe.Percentile)
	}
	if pe.Assessment != "high" {
		t.Fatalf("unexpected assessment %s", pe.Assessment)
	}
}

func TestCompareSectorSkipsMissingPeerValues(t *testing.T) {
	stock := &models.Fundamentals{ROE: fptr(0.2)}
	peers := map[string]*models.Fundamentals{
		"PEER1": {ROE: fptr(0.1)},
		"PEER2": {}, // no ROE
		"PEER3": nil,
	}
	cmp := CompareSector("power", stock, peers)
	roe := cmp.Metrics[MetricROE]
	if roe.SectorMedian != 0.1 {
		t.Fatalf("unexpected median %v", roe.SectorMedian)
	}
	if len(cmp.Concerns) != 0 {
		t.Fatalf("above-median ROE is not a concern, got %v", cmp.Concerns)
	}
	if len(cmp.Peers) != 3 {
		t.Fatalf("peers list should name everyone, got %v", cmp.Peers)
	}
}

func TestCompareSectorNoFundamentals(t *testing.T) {
	cmp := CompareSector("power", nil, map[string]*models.Fundamentals{"P": {}})
	if len(cmp.Metrics) != 0 {
		t.Fatalf("expected no metrics, got %v", cmp.Metrics)
	}
}
