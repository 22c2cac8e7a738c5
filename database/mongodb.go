package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	Client *mongo.Client
}

var TIMEOUT = 120 * time.Second

const ServerSelectionTimeout = 10 * time.Second

var ErrNoMongoTarget = errors.New("no mongodb uri or host provided")

// ClientOptions uses the uri when given, otherwise host and port with SCRAM
// credentials when a username is set.
func ClientOptions(uri string, host string, port string, databaseCredentials string, username string, password string) (*options.ClientOptions, error) {

	authentication := "SCRAM-SHA-256"

	var opts *options.ClientOptions
	if uri != "" {
		// e.g. "mongodb+srv://<username>:<password>@cluster.mongodb.net/?retryWrites=true&w=majority"
		opts = options.Client().ApplyURI(uri)
	} else {
		if host == "" {
			return nil, ErrNoMongoTarget
		}
		address := host
		if port != "" {
			address = fmt.Sprintf("%s:%s", host, port)
		}
		opts = options.Client().ApplyURI(fmt.Sprintf("mongodb://%s", address))
		if username != "" {
			opts.SetAuth(options.Credential{
				AuthMechanism: authentication,
				AuthSource:    databaseCredentials,
				Username:      username,
				Password:      password,
			})
		}
	}
	opts.SetServerSelectionTimeout(ServerSelectionTimeout)
	return opts, nil
}

// NewMongoDB connects and pings the primary so an unreachable server fails
// here instead of on the first operation.
func NewMongoDB(ctx context.Context, uri string, host string, port string, databaseCredentials string, username string, password string) (*DB, error) {
	opts, err := ClientOptions(uri, host, port, databaseCredentials, username, password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &DB{Client: client}, nil
}

func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
