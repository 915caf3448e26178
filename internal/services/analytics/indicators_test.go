package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestRSIShortSeriesNeutral(t *testing.T) {
	if got := RSI([]float64{1, 2, 3}, RSIPeriod); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestRSIAllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if got := RSI(closes, RSIPeriod); got != 100 {
		t.Fatalf("expected 100 for monotone gains, got %v", got)
	}
}

func TestRSIMixed(t *testing.T) {
	// Alternate +2/-1 so avg gain is twice avg loss: RSI = 100-100/(1+2).
	closes := []float64{100}
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+2)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}
	got := RSI(closes, RSIPeriod)
	if !almostEqual(got, 100-100.0/3, 1e-9) {
		t.Fatalf("unexpected rsi %v", got)
	}
}

func TestEMASeedAndRecursion(t *testing.T) {
	values := []float64{10, 20, 30}
	out := EMA(values, 9)
	if out[0] != 10 {
		t.Fatalf("ema should seed at first value, got %v", out[0])
	}
	alpha := 2.0 / 10
	want1 := alpha*20 + (1-alpha)*10
	if !almostEqual(out[1], want1, 1e-12) {
		t.Fatalf("unexpected ema[1] %v want %v", out[1], want1)
	}
}

func TestEMAWeightedConstantSeries(t *testing.T) {
	out := EMAWeighted([]float64{5, 5, 5, 5}, 50)
	for i, v := range out {
		if !almostEqual(v, 5, 1e-12) {
			t.Fatalf("constant series should stay constant, got %v at %d", v, i)
		}
	}
}

func TestMACDSignalLags(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	macd, signal := MACD(closes)
	last := len(closes) - 1
	if macd[last] <= 0 {
		t.Fatalf("rising series should have positive macd, got %v", macd[last])
	}
	if macd[last] <= signal[last] {
		t.Fatalf("macd should lead signal on a steady rise: %v vs %v", macd[last], signal[last])
	}
}
