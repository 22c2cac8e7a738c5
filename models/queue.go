package models

// Queue holds the connection settings of the queue that receives seed
// summaries. Only the fields of the selected system are read.
type Queue struct {
	Broker    string `json:"broker" bson:"broker"`       // kafka, rabbitmq
	Username  string `json:"username" bson:"username"`   // kafka, rabbitmq
	Password  string `json:"password" bson:"password"`   // kafka, rabbitmq
	Topic     string `json:"topic" bson:"topic"`         // kafka, rabbitmq, SQS
	Mechanism string `json:"mechanism" bson:"mechanism"` // kafka
	Security  string `json:"security" bson:"security"`   // kafka

	Exchange string `json:"exchange" bson:"exchange"` // rabbitmq

	Region    string `json:"region" bson:"region"`         // AWS
	AccessKey string `json:"access_key" bson:"access_key"` // AWS
	Secret    string `json:"secret" bson:"secret"`         // AWS

	Url string `json:"url" bson:"url"` // webhook
	Key string `json:"key" bson:"key"` // webhook
}
