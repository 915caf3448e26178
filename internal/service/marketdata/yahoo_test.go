package marketdata

import (
	"encoding/json"
	"math"
	"testing"

	"SwingScope/internal/domain/models"
)

const summaryPayload = `{
  "quoteSummary": {
    "result": [
      {
        "financialData": {
          "returnOnEquity": {"raw": 0.182, "fmt": "18.20%"},
          "debtToEquity": {"raw": 152.4, "fmt": "152.40"}
        },
        "defaultKeyStatistics": {
          "heldPercentInstitutions": {"raw": 0.74, "fmt": "74.00%"},
          "trailingEps": {"raw": 12.5, "fmt": "12.50"}
        }
      }
    ],
    "error": null
  }
}`

func TestApplySummary(t *testing.T) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal([]byte(summaryPayload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	f := &models.Fundamentals{Symbol: "NTPC.NS"}
	applySummary(f, &resp)

	if f.ROE == nil || *f.ROE != 0.182 {
		t.Fatalf("unexpected roe %v", f.ROE)
	}
	// Percent figure must be normalized to a ratio.
	if f.DebtToEquity == nil || math.Abs(*f.DebtToEquity-1.524) > 1e-9 {
		t.Fatalf("unexpected d/e %v", f.DebtToEquity)
	}
	if f.InstitutionalHolding == nil || *f.InstitutionalHolding != 0.74 {
		t.Fatalf("unexpected institutional %v", f.InstitutionalHolding)
	}
	if f.EPS == nil || *f.EPS != 12.5 {
		t.Fatalf("unexpected eps %v", f.EPS)
	}
}

func TestApplySummaryKeepsQuoteEPS(t *testing.T) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal([]byte(summaryPayload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	eps := 9.9
	f := &models.Fundamentals{Symbol: "NTPC.NS", EPS: &eps}
	applySummary(f, &resp)
	if *f.EPS != 9.9 {
		t.Fatalf("quote eps should win, got %v", *f.EPS)
	}
}

func TestApplySummaryEmptyResult(t *testing.T) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal([]byte(`{"quoteSummary":{"result":[],"error":null}}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	f := &models.Fundamentals{Symbol: "X"}
	applySummary(f, &resp)
	if f.ROE != nil || f.DebtToEquity != nil {
		t.Fatalf("expected untouched fundamentals")
	}
}
