package queue

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	models "github.com/suncar/seeder/models"
)

type SQSQueue struct {
	Name       string
	Connection sqsiface.SQSAPI
}

func CreateSQSQueue(connection models.Queue) (*SQSQueue, error) {
	config := &aws.Config{
		Region: aws.String(connection.Region),
	}
	// Without static keys the default credential chain applies.
	if connection.AccessKey != "" {
		config.Credentials = credentials.NewStaticCredentials(connection.AccessKey, connection.Secret, "")
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, err
	}
	return &SQSQueue{
		Name:       connection.Topic,
		Connection: sqs.New(sess),
	}, nil
}

func (q *SQSQueue) queueUrl(queueName string) (*string, error) {
	if queueName == "" {
		queueName = q.Name
	}
	if queueName == "" {
		return nil, errors.New("sqs: queue name is required")
	}
	url, err := q.Connection.GetQueueUrl(&sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return nil, err
	}
	return url.QueueUrl, nil
}

func (q *SQSQueue) Test(queueName string) error {
	_, err := q.queueUrl(queueName)
	return err
}

func (q *SQSQueue) SendMessage(queueName string, payload string, delay int) error {
	url, err := q.queueUrl(queueName)
	if err != nil {
		return err
	}
	_, err = q.Connection.SendMessage(&sqs.SendMessageInput{
		MessageBody:  aws.String(payload),
		QueueUrl:     url,
		DelaySeconds: aws.Int64(int64(delay)),
	})
	return err
}

func (q *SQSQueue) Close() {

}
