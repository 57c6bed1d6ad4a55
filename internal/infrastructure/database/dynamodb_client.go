package database

import (
	"context"

	"cotacao_service/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

// ConnectDynamoDB creates a DynamoDB client from the service config.
//
// Local setup: point DYNAMODB_ENDPOINT at dynamodb-local (e.g.
// http://dynamodb:8000); the static credentials are then never checked.
func ConnectDynamoDB(cfg config.Config, logger *logrus.Logger) *dynamodb.Client {
	awsCfg, err := NewDynamoDBConfig(context.Background(), cfg)
	if err != nil {
		logger.WithError(err).Fatal("[dynamodb] failed to create config")
	}
	logger.WithFields(logrus.Fields{
		"region":   cfg.AWSRegion,
		"endpoint": cfg.DynamoDBEndpoint,
	}).Info("[dynamodb] client configured")
	return dynamodb.NewFromConfig(awsCfg)
}

func NewDynamoDBConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(creds),
	}

	if cfg.DynamoDBEndpoint != "" {
		endpoint := cfg.DynamoDBEndpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
