package repository

import (
	"context"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	pkgkafka "SwingScope/pkg/kafka"
)

// KafkaRecommendationPublisher emits finished recommendations to a
// Kafka topic, keyed by symbol so per symbol ordering holds.
type KafkaRecommendationPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaRecommendationPublisher(producer *pkgkafka.Producer, topic string) *KafkaRecommendationPublisher {
	return &KafkaRecommendationPublisher{producer: producer, topic: topic}
}

func (p *KafkaRecommendationPublisher) Publish(ctx context.Context, report *models.Report) error {
	return p.producer.Publish(ctx, p.topic, []byte(report.Symbol), map[string]interface{}{
		"symbol":       report.Symbol,
		"generated_at": report.GeneratedAt.Unix(),
		"rating":       report.Recommendation.Rating,
		"overall":      report.Scores.Overall,
		"entry":        report.Recommendation.EntryPrice,
		"target":       report.Recommendation.Target,
		"stop":         report.Recommendation.StopLoss,
		"risk_reward":  report.Recommendation.RiskReward,
		"reason":       report.Recommendation.Reason,
	})
}

func (p *KafkaRecommendationPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.RecommendationPublisher = (*KafkaRecommendationPublisher)(nil)
