package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSender sends to an AWS (or LocalStack) SQS queue.
type SQSSender struct {
	client   sqsAPI
	queueURL string
}

func NewSQSSender(client *sqs.Client, queueURL string) *SQSSender {
	if client == nil {
		panic("events: SQS client cannot be nil")
	}
	return newSQSSender(client, queueURL)
}

func newSQSSender(client sqsAPI, queueURL string) *SQSSender {
	if queueURL == "" {
		panic("events: SQS queueURL cannot be empty")
	}
	return &SQSSender{client: client, queueURL: queueURL}
}

func (s *SQSSender) Send(ctx context.Context, body string) error {
	_, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("events: failed to send SQS message: %w", err)
	}
	return nil
}
