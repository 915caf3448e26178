package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
)

// ClickHouseReportStore persists analysis reports in ClickHouse. The
// scored columns are denormalized for ad hoc querying, the full report
// rides along as a JSON payload.
type ClickHouseReportStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseReportStore creates the report store over an existing pool.
func NewClickHouseReportStore(db *sql.DB, table string) *ClickHouseReportStore {
	if table == "" {
		table = "swingscope_reports"
	}
	return &ClickHouseReportStore{db: db, table: table}
}

func (s *ClickHouseReportStore) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		symbol       LowCardinality(String),
		generated_at DateTime64(3),
		rating       LowCardinality(String),
		overall      Float64,
		technical    Float64,
		news         Float64,
		fundamental  Float64,
		entry        Float64,
		target       Float64,
		stop         Float64,
		risk_reward  Float64,
		payload      String
	) ENGINE = MergeTree()
	ORDER BY (symbol, generated_at)
	TTL toDateTime(generated_at) + INTERVAL 180 DAY`, s.table)
	_, err := s.db.ExecContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("init report store: %w", err)
	}
	return nil
}

func (s *ClickHouseReportStore) Save(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	q := fmt.Sprintf(`INSERT INTO %s
		(symbol, generated_at, rating, overall, technical, news, fundamental,
		 entry, target, stop, risk_reward, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err = s.db.ExecContext(ctx, q,
		report.Symbol,
		report.GeneratedAt,
		report.Recommendation.Rating,
		report.Scores.Overall,
		report.Scores.Technical,
		report.Scores.News,
		report.Scores.Fundamental,
		report.Recommendation.EntryPrice,
		report.Recommendation.Target,
		report.Recommendation.StopLoss,
		report.Recommendation.RiskReward,
		string(payload),
	)
	return err
}

func (s *ClickHouseReportStore) Latest(ctx context.Context, symbol string) (*models.Report, error) {
	q := fmt.Sprintf(`SELECT payload FROM %s
		WHERE symbol = ? ORDER BY generated_at DESC LIMIT 1`, s.table)

	var payload string
	if err := s.db.QueryRowContext(ctx, q, symbol).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no reports for %s", symbol)
		}
		return nil, err
	}
	return decodeReport(payload)
}

func (s *ClickHouseReportStore) List(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]*models.Report, error) {
	var (
		conds []string
		args  []interface{}
	)
	if symbol != "" {
		conds = append(conds, "symbol = ?")
		args = append(args, symbol)
	}
	if from != nil {
		conds = append(conds, "generated_at >= ?")
		args = append(args, *from)
	}
	if to != nil {
		conds = append(conds, "generated_at <= ?")
		args = append(args, *to)
	}

	q := fmt.Sprintf("SELECT payload FROM %s", s.table)
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY generated_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		report, err := decodeReport(payload)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (s *ClickHouseReportStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseReportStore) Close() error {
	return nil // pool owned by pkg/clickhouse
}

func decodeReport(payload string) (*models.Report, error) {
	var report models.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

var _ domrepo.ReportStore = (*ClickHouseReportStore)(nil)
