package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/joho/godotenv"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/blobs"
	"github.com/lorrylink/lorrylink/pkg/handlers"
	"github.com/lorrylink/lorrylink/pkg/notifier"
	dynamostore "github.com/lorrylink/lorrylink/pkg/storage/dynamodb"
)

// chiLambda wraps the same router cmd/app serves, so the API behaves
// identically behind API Gateway.
var chiLambda *chiadapter.ChiLambdaV2

// init runs during cold start and builds the dependency graph once.
func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	tableName := os.Getenv("DYNAMODB_TABLE_NAME")
	if tableName == "" {
		log.Fatal("DYNAMODB_TABLE_NAME environment variable not set")
	}

	var tripEvents notifier.Notifier = &notifier.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		tripEvents = notifier.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	}

	var issuer blobs.Issuer
	if bucket := os.Getenv("DOCUMENTS_BUCKET"); bucket != "" {
		issuer = blobs.NewS3Issuer(s3.NewPresignClient(s3.NewFromConfig(cfg)), bucket, 0)
	}

	store := dynamostore.New(dbClient, tripEvents, tableName)
	handler := handlers.NewApiHandler(store, issuer)
	router := handlers.NewRouter(handler, auth.NewGatewayValidator(), nil)

	chiLambda = chiadapter.NewV2(router)
}

// Handler proxies one API Gateway v2 request through the chi router.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
