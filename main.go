package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/suncar/seeder/actions"
	"github.com/suncar/seeder/models"
	"github.com/suncar/seeder/utils"
)

const (
	ActionSeedWorkOrders = "seed-work-orders"
	ActionCheckIndexes   = "check-indexes"
)

func main() {

	fmt.Println(`
     ____                             ____                _
    / ___| _   _ _ __   ___ __ _ _ __/ ___|  ___  ___  __| | ___ _ __
    \___ \| | | | '_ \ / __/ _' | '__\___ \ / _ \/ _ \/ _' |/ _ \ '__|
     ___) | |_| | | | | (_| (_| | |   ___) |  __/  __/ (_| |  __/ |
    |____/ \__,_|_| |_|\___\__,_|_|  |____/ \___|\___|\__,_|\___|_|
    `)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("[warn] load .env: %v\n", err)
	}

	action := flag.String("action", ActionSeedWorkOrders, "Action to take (seed-work-orders, check-indexes)")

	mongodbURI := flag.String("mongodb-uri", utils.GetEnv("MONGODB_URI", actions.DefaultMongoURI), "MongoDB URI")
	mongodbHost := flag.String("mongodb-host", "", "MongoDB Host (used when -mongodb-uri is not passed)")
	mongodbPort := flag.String("mongodb-port", "", "MongoDB Port")
	mongodbDatabaseCredentials := flag.String("mongodb-database-credentials", "", "MongoDB Database Credentials (auth source)")
	mongodbUsername := flag.String("mongodb-username", "", "MongoDB Username")
	mongodbPassword := flag.String("mongodb-password", os.Getenv("MONGODB_PASSWORD"), "MongoDB Password")
	dbName := flag.String("db", utils.GetEnv("MONGODB_DB", actions.DefaultDBName), "Database name")
	workOrderCollName := flag.String("work-order-collection", actions.DefaultWorkOrderCollection, "Work order collection name")
	count := flag.Int("count", actions.DefaultWorkOrderCount, "Number of work orders to insert")
	sampleSize := flag.Int("sample-size", actions.DefaultSampleSize, "Number of sample work orders to print")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	noProgress := flag.Bool("no-progress", false, "Disable the progress bar")
	exportPath := flag.String("export", "", "Write the inserted work orders to this .xlsx file")

	queueSystem := flag.String("queue", "", "Publish the seed summary to rabbitmq, kafka, sqs or webhook")
	queueTopic := flag.String("queue-topic", "", "Queue, topic or webhook path receiving the summary")
	queueBroker := flag.String("queue-broker", "", "Kafka or RabbitMQ broker")
	queueUsername := flag.String("queue-username", "", "Queue username")
	queuePassword := flag.String("queue-password", os.Getenv("QUEUE_PASSWORD"), "Queue password")
	queueExchange := flag.String("queue-exchange", "", "RabbitMQ exchange")
	queueMechanism := flag.String("queue-mechanism", "PLAIN", "Kafka SASL mechanism")
	queueSecurity := flag.String("queue-security", "SASL_PLAINTEXT", "Kafka security protocol")
	queueRegion := flag.String("queue-region", utils.GetEnv("AWS_REGION", ""), "AWS region for SQS")
	queueAccessKey := flag.String("queue-access-key", "", "AWS access key for SQS")
	queueSecret := flag.String("queue-secret", os.Getenv("QUEUE_SECRET"), "AWS secret for SQS")
	queueUrl := flag.String("queue-url", "", "Webhook url")
	queueKey := flag.String("queue-key", os.Getenv("QUEUE_KEY"), "Webhook key")

	mode := flag.String("mode", actions.ModeDryRun, "Mode for check-indexes (dry-run, live)")
	autoFix := flag.Bool("auto-fix", false, "Create missing indexes without prompting (live mode)")

	flag.Parse()

	// An explicit host replaces the env or default URI.
	if actions.WasFlagPassed("mongodb-host") && !actions.WasFlagPassed("mongodb-uri") {
		*mongodbURI = ""
	}

	switch strings.TrimSpace(*action) {
	case ActionSeedWorkOrders, "":
		fmt.Println("Seeding work orders...")
		actions.SeedWorkOrders(actions.SeedWorkOrdersConfig{
			MongoURI:            *mongodbURI,
			MongoHost:           *mongodbHost,
			MongoPort:           *mongodbPort,
			DatabaseCredentials: *mongodbDatabaseCredentials,
			MongoUsername:       *mongodbUsername,
			MongoPassword:       *mongodbPassword,
			DBName:              *dbName,
			Collection:          *workOrderCollName,
			Count:               *count,
			SampleSize:          *sampleSize,
			Seed:                *seed,
			NoProgress:          *noProgress,
			ExportPath:          *exportPath,
			QueueSystem:         *queueSystem,
			QueueTopic:          *queueTopic,
			Queue: models.Queue{
				Broker:    *queueBroker,
				Username:  *queueUsername,
				Password:  *queuePassword,
				Topic:     *queueTopic,
				Mechanism: *queueMechanism,
				Security:  *queueSecurity,
				Exchange:  *queueExchange,
				Region:    *queueRegion,
				AccessKey: *queueAccessKey,
				Secret:    *queueSecret,
				Url:       *queueUrl,
				Key:       *queueKey,
			},
		})
	case ActionCheckIndexes:
		fmt.Println("Checking work order indexes...")
		actions.CheckIndexes(actions.CheckIndexesConfig{
			MongoURI:            *mongodbURI,
			MongoHost:           *mongodbHost,
			MongoPort:           *mongodbPort,
			DatabaseCredentials: *mongodbDatabaseCredentials,
			MongoUsername:       *mongodbUsername,
			MongoPassword:       *mongodbPassword,
			DBName:              *dbName,
			Collection:          *workOrderCollName,
			Mode:                *mode,
			AutoFix:             *autoFix,
		})
	default:
		fmt.Printf("[error] invalid action %q\n", *action)
		os.Exit(2)
	}
}
