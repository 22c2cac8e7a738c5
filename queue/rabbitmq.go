package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	models "github.com/suncar/seeder/models"
)

// RabbitMQ struct
type RabbitMQ struct {
	// RabbitMQ connection
	conn *amqp.Connection
	// RabbitMQ channel for producing
	chP *amqp.Channel
	// RabbitMQ exchange
	exchange string
	// RabbitMQ queue name
	queueName string
	// RabbitMQ connection string
	connString string
}

// RabbitMQConnString builds the amqp url from a broker host that may or may
// not carry its protocol.
func RabbitMQConnString(broker string, username string, password string) string {
	host := broker
	protocol := "amqp://"
	if strings.HasPrefix(host, "amqps://") {
		protocol = "amqps://"
		host = strings.TrimPrefix(host, "amqps://")
	} else if strings.HasPrefix(host, "amqp://") {
		host = strings.TrimPrefix(host, "amqp://")
	}
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return ""
	}
	if username != "" && password != "" {
		return protocol + username + ":" + password + "@" + host + "/"
	}
	return protocol + host + "/"
}

func CreateRabbitMQ(connection models.Queue) (*RabbitMQ, error) {
	r := &RabbitMQ{
		exchange:   connection.Exchange,
		queueName:  connection.Topic,
		connString: RabbitMQConnString(connection.Broker, connection.Username, connection.Password),
	}
	if r.connString == "" {
		return nil, errors.New("rabbitmq: broker is required")
	}
	if err := r.Connect(); err != nil {
		return nil, fmt.Errorf("rabbitmq connection error: %w", err)
	}
	return r, nil
}

// Connect to RabbitMQ
func (r *RabbitMQ) Connect() error {
	var err error
	r.conn, err = amqp.Dial(r.connString)
	if err != nil {
		return err
	}

	r.chP, err = r.conn.Channel()
	if err != nil {
		return err
	}

	if r.queueName == "" || r.exchange != "" {
		return nil
	}
	// Publishing through the default exchange routes by queue name, so the
	// queue has to exist. QueueInspect closes the channel on failure.
	inspect, err := r.conn.Channel()
	if err != nil {
		return err
	}
	if _, err = inspect.QueueInspect(r.queueName); err == nil {
		return inspect.Close()
	}
	fmt.Printf("[info] rabbitmq: queue %s does not exist, declaring it\n", r.queueName)
	_, err = r.chP.QueueDeclare(
		r.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		amqp.Table{
			"x-queue-type": "quorum",
		}, // arguments
	)
	return err
}

func (r *RabbitMQ) SendMessage(queueName string, payload string, delay int) error {
	if queueName == "" {
		queueName = r.queueName
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.chP.PublishWithContext(ctx,
		r.exchange, // empty means the default exchange, which routes by queue name
		queueName,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        []byte(payload),
		})
}

func (r *RabbitMQ) Test(queueName string) error {
	if r.conn == nil {
		if err := r.Connect(); err != nil {
			return err
		}
	}
	if r.conn.IsClosed() {
		return errors.New("rabbitmq: connection is closed")
	}
	return nil
}

func (r *RabbitMQ) Close() {
	if r.chP != nil {
		r.chP.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
