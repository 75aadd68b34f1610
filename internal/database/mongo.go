package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoConfig struct {
	URL    string
	DBName string
}

// NewMongo connects and waits for the server to become reachable, retrying
// with backoff for up to 30 seconds before giving up.
func NewMongo(cfg MongoConfig) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}

	deadline := time.Now().Add(30 * time.Second)
	backoff := 500 * time.Millisecond
	for {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(pingCtx, readpref.Primary())
		pingCancel()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("failed to ping mongodb: %v", err)
		}
		log.Printf("mongodb not ready yet: %v", err)
		time.Sleep(backoff)
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}

	return client, client.Database(cfg.DBName)
}
