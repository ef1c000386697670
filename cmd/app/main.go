package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/blobs"
	"github.com/lorrylink/lorrylink/pkg/handlers"
	"github.com/lorrylink/lorrylink/pkg/notifier"
	dynamostore "github.com/lorrylink/lorrylink/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	tableName := os.Getenv("DYNAMODB_TABLE_NAME")
	if tableName == "" {
		log.Fatal("DYNAMODB_TABLE_NAME environment variable not set")
	}

	// Trip events go to SQS when a queue is configured; otherwise they are
	// dropped, which is fine for local development.
	var events notifier.Notifier = &notifier.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		events = notifier.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_QUEUE_URL not set, trip events disabled")
	}

	// Document bytes live in S3 behind presigned URLs when a bucket is
	// configured.
	var issuer blobs.Issuer
	if bucket := os.Getenv("DOCUMENTS_BUCKET"); bucket != "" {
		issuer = blobs.NewS3Issuer(s3.NewPresignClient(s3.NewFromConfig(cfg)), bucket, 0)
	} else {
		log.Println("DOCUMENTS_BUCKET not set, document URLs disabled")
	}

	// Create our storage implementation
	store := dynamostore.New(dbClient, events, tableName)

	// Create our handler and router
	handler := handlers.NewApiHandler(store, issuer)

	var origins []string
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	router := handlers.NewRouter(handler, auth.NewGatewayValidator(), origins)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
