package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	models "github.com/suncar/seeder/models"
)

type KafkaQueue struct {
	Name         string
	Producer     *kafka.Producer
	AdminClient  *kafka.AdminClient
	DeliveryChan chan kafka.Event
}

// KafkaConfigMap builds the producer config. SASL settings are only added
// when a mechanism is given.
func KafkaConfigMap(connection models.Queue) kafka.ConfigMap {
	configMap := kafka.ConfigMap{
		"bootstrap.servers":  connection.Broker,
		"session.timeout.ms": 10000,
	}
	if connection.Security != "" {
		configMap["security.protocol"] = connection.Security // e.g. "SASL_PLAINTEXT"
	}
	if connection.Mechanism != "" {
		configMap["sasl.mechanisms"] = connection.Mechanism // e.g. "PLAIN"
		configMap["sasl.username"] = connection.Username
		configMap["sasl.password"] = connection.Password
	}
	return configMap
}

func CreateKafkaQueue(connection models.Queue) (*KafkaQueue, error) {
	if connection.Broker == "" {
		return nil, errors.New("kafka: broker is required")
	}
	configMap := KafkaConfigMap(connection)
	p, err := kafka.NewProducer(&configMap)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	a, err := kafka.NewAdminClientFromProducer(p)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("kafka admin client: %w", err)
	}

	return &KafkaQueue{
		Name:         connection.Topic,
		Producer:     p,
		AdminClient:  a,
		DeliveryChan: make(chan kafka.Event, 1),
	}, nil
}

// Test checks that the topic is known to the cluster.
func (q *KafkaQueue) Test(queueName string) error {
	if queueName == "" {
		queueName = q.Name
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := q.AdminClient.DescribeTopics(ctx, kafka.NewTopicCollectionOfTopicNames([]string{queueName}))
	if err != nil {
		return err
	}
	for _, d := range results.TopicDescriptions {
		if d.Error.Code() != kafka.ErrNoError {
			return d.Error
		}
	}
	return nil
}

func (q *KafkaQueue) SendMessage(queueName string, payload string, delay int) error {
	if queueName == "" {
		queueName = q.Name
	}
	err := q.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &queueName, Partition: kafka.PartitionAny},
		Value:          []byte(payload),
	}, q.DeliveryChan)
	if err != nil {
		return err
	}
	e := <-q.DeliveryChan
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		return m.TopicPartition.Error
	}
	return nil
}

func (q *KafkaQueue) Close() {
	if q.AdminClient != nil {
		q.AdminClient.Close()
	}
	if q.Producer != nil {
		q.Producer.Flush(5000)
		q.Producer.Close()
	}
}
