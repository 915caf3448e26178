package analytics

import (
	"sort"

	"SwingScope/internal/domain/models"
)

// MetricPE and friends name the compared sector metrics.
const (
	MetricPE  = "pe_ratio"
	MetricDE  = "debt_equity"
	MetricROE = "roe"
)

// CompareSector compares the stock's fundamentals against its peers and
// flags concerns that downgrade the final rating. Peers with missing
// values are skipped per metric.
func CompareSector(sector string, stock *models.Fundamentals, peers map[string]*models.Fundamentals) *models.SectorComparison {
	cmp := &models.SectorComparison{
		Sector:  sector,
		Metrics: make(map[string]models.SectorMetric),
	}
	for symbol := range peers {
		cmp.Peers = append(cmp.Peers, symbol)
	}
	sort.Strings(cmp.Peers)

	if stock == nil {
		return cmp
	}

	collect := func(get func(*models.Fundamentals) *float64) []float64 {
		var vals []float64
		for _, p := range peers {
			if p == nil {
				continue
			}
			if v := get(p); v != nil {
				vals = append(vals, *v)
			}
		}
		return vals
	}

	pe := func(f *models.Fundamentals) *float64 { return f.PERatio }
	de := func(f *models.Fundamentals) *float64 { return f.DebtToEquity }
	roe := func(f *models.Fundamentals) *float64 { return f.ROE }

	if stock.PERatio != nil {
		if m, ok := compareMetric(*stock.PERatio, collect(pe)); ok {
			cmp.Metrics[MetricPE] = m
			if m.Assessment == "high" {
				cmp.Concerns = append(cmp.Concerns, "high PE ratio vs sector")
			}
		}
	}
	if stock.DebtToEquity != nil {
		if m, ok := compareMetric(*stock.DebtToEquity, collect(de)); ok {
			cmp.Metrics[MetricDE] = m
			if m.Assessment == "high" {
				cmp.Concerns = append(cmp.Concerns, "high debt vs sector")
			}
		}
	}
	if stock.ROE != nil {
		if m, ok := compareMetric(*stock.ROE, collect(roe)); ok {
			cmp.Metrics[MetricROE] = m
			if m.Assessment == "low" {
				cmp.Concerns = append(cmp.Concerns, "below-sector ROE")
			}
		}
	}

	return cmp
}

// compareMetric builds sector stats for one metric. Assessment is the
// stock's side of the peer median.
func compareMetric(stock float64, peers []float64) (models.SectorMetric, bool) {
	if len(peers) == 0 {
		return models.SectorMetric{}, false
	}

	var below int
	min, max := peers[0], peers[0]
	var sum float64
	for _, v := range peers {
		if v < stock {
			below++
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	med := median(peers)
	assessment := "low"
	if stock > med {
		assessment = "high"
	}

	return models.SectorMetric{
		Stock:        stock,
		SectorMedian: med,
		SectorMean:   sum / float64(len(peers)),
		SectorMin:    min,
		SectorMax:    max,
		Percentile:   float64(below) / float64(len(peers)),
		Assessment:   assessment,
	}, true
}

func median(values []float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
