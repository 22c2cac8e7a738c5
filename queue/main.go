package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	models "github.com/suncar/seeder/models"
)

// Payload is the envelope published after a seed run.
type Payload struct {
	Events    []string           `json:"events,omitempty"`
	Source    string             `json:"source,omitempty"`
	Date      int64              `json:"date,omitempty"`
	Summary   models.SeedSummary `json:"summary"`
	Operation string             `json:"operation,omitempty"`
}

type Queue interface {
	SendMessage(queueName string, payload string, delay int) error
	Test(queueName string) error
	Close()
}

const (
	SystemRabbitMQ = "rabbitmq"
	SystemKafka    = "kafka"
	SystemSQS      = "sqs"
	SystemWebhook  = "webhook"
)

var Systems = []string{SystemRabbitMQ, SystemKafka, SystemSQS, SystemWebhook}

func CreateQueue(queueSystem string, connection models.Queue) (Queue, error) {
	var q Queue
	var err error
	switch strings.ToLower(strings.TrimSpace(queueSystem)) {
	case SystemSQS:
		q, err = CreateSQSQueue(connection)
	case SystemKafka:
		q, err = CreateKafkaQueue(connection)
	case SystemRabbitMQ:
		q, err = CreateRabbitMQ(connection)
	case SystemWebhook:
		q, err = CreateWebhookQueue(connection)
	default:
		return nil, fmt.Errorf("unknown queue system %q (expected one of %s)", queueSystem, strings.Join(Systems, ", "))
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func BuildSummaryPayload(summary models.SeedSummary) ([]byte, error) {
	payload := Payload{
		Events:    []string{"work-orders-seeded"},
		Source:    "seeder",
		Date:      summary.SeededAt.Unix(),
		Summary:   summary,
		Operation: "seed",
	}
	// Samples are for the console only.
	payload.Summary.Samples = nil
	return json.Marshal(payload)
}

// PublishSummary sends the seed summary as JSON to the given topic.
func PublishSummary(q Queue, topic string, summary models.SeedSummary) error {
	bytes, err := BuildSummaryPayload(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := q.SendMessage(topic, string(bytes), 0); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	return nil
}
