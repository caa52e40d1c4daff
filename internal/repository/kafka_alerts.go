// Package repository contains outbound adapters: the alert bus and the
// analysis history sink.
package repository

import (
	"context"
	"time"

	"github.com/mmkaya-ui/borsa2/internal/domain/models"
	"github.com/mmkaya-ui/borsa2/pkg/kafka"
)

// KafkaAlertPublisher implements service.AlertPublisher over a Kafka topic.
// Alerts are keyed by symbol so per-instrument ordering is preserved.
type KafkaAlertPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *kafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

type whaleAlertEvent struct {
	Kind      string                `json:"kind"`
	Symbol    string                `json:"symbol"`
	AlertType models.WhaleAlertType `json:"alert_type"`
	Severity  models.RiskLevel      `json:"severity"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
}

type riskEvent struct {
	Kind      string           `json:"kind"`
	Symbol    string           `json:"symbol"`
	RiskScore int              `json:"risk_score"`
	RiskLevel models.RiskLevel `json:"risk_level"`
	Hints     []string         `json:"hints"`
	Timestamp time.Time        `json:"timestamp"`
}

func (p *KafkaAlertPublisher) PublishWhaleAlert(ctx context.Context, alert models.WhaleAlert) error {
	return p.producer.Publish(ctx, p.topic, []byte(alert.Symbol), whaleAlertEvent{
		Kind:      "whale_alert",
		Symbol:    alert.Symbol,
		AlertType: alert.Type,
		Severity:  alert.Severity,
		Message:   alert.Description,
		Timestamp: alert.Timestamp,
	})
}

func (p *KafkaAlertPublisher) PublishRiskEvent(ctx context.Context, symbol string, result models.AnalysisResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(symbol), riskEvent{
		Kind:      "risk_event",
		Symbol:    symbol,
		RiskScore: result.RiskScore,
		RiskLevel: result.RiskLevel,
		Hints:     result.Hints,
		Timestamp: time.Now().UTC(),
	})
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}

// NopAlertPublisher discards everything. Used when the alert bus is disabled.
type NopAlertPublisher struct{}

func (NopAlertPublisher) PublishWhaleAlert(context.Context, models.WhaleAlert) error { return nil }
func (NopAlertPublisher) PublishRiskEvent(context.Context, string, models.AnalysisResult) error {
	return nil
}
func (NopAlertPublisher) Close() error { return nil }
