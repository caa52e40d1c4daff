package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/pkg/clickhouse"
)

// ClickHouseHistory implements service.HistoryRecorder on ClickHouse.
type ClickHouseHistory struct {
	client *clickhouse.Client
}

func NewClickHouseHistory(client *clickhouse.Client) *ClickHouseHistory {
	return &ClickHouseHistory{client: client}
}

// SchemaStatements returns idempotent DDL for the history tables.
func SchemaStatements(database string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.analysis_history (
			symbol     String,
			risk_score Int32,
			risk_level LowCardinality(String),
			hints      String,
			rsi        Float64,
			volatility Float64,
			ts         DateTime
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY (symbol, ts)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.vigil_history (
			score      Float64,
			decision   LowCardinality(String),
			risk_level LowCardinality(String),
			messages   String,
			strategy   String,
			ts         DateTime
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY ts`, database),
	}
}

func (r *ClickHouseHistory) RecordAnalysis(ctx context.Context, symbol string, result models.AnalysisResult) error {
	const q = `INSERT INTO analysis_history (symbol, risk_score, risk_level, hints, rsi, volatility, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.client.DB().ExecContext(ctx, q,
		symbol,
		int32(result.RiskScore),
		string(result.RiskLevel),
		strings.Join(result.Hints, ","),
		result.RSI,
		result.Volatility,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record analysis %s: %w", symbol, err)
	}
	return nil
}

func (r *ClickHouseHistory) RecordVigil(ctx context.Context, report models.VigilReport) error {
	const q = `INSERT INTO vigil_history (score, decision, risk_level, messages, strategy, ts)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.client.DB().ExecContext(ctx, q,
		report.Score,
		string(report.Decision),
		string(report.RiskLevel),
		strings.Join(report.Messages, "|"),
		report.Strategy,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record vigil: %w", err)
	}
	return nil
}

// NopHistory discards everything. Used when ClickHouse is disabled.
type NopHistory struct{}

func (NopHistory) RecordAnalysis(context.Context, string, models.AnalysisResult) error { return nil }
func (NopHistory) RecordVigil(context.Context, models.VigilReport) error               { return nil }
