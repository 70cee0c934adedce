package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"offerfit-backend/internal/bootstrap"
	"offerfit-backend/internal/queue"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeProcessor struct {
	err       error
	processed []string
}

func (f *fakeProcessor) ProcessPhrasing(ctx context.Context, evaluationID string) error {
	f.processed = append(f.processed, evaluationID)
	return f.err
}

func TestHandleMessageDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	processor := &fakeProcessor{}
	app := &bootstrap.App{PhrasingProcessor: processor}

	body, err := json.Marshal(queue.Message{EvaluationID: "evaluation-1", RequestID: "req-1", Version: 1})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	msg := sqstypes.Message{
		Body:          aws.String(string(body)),
		ReceiptHandle: aws.String("receipt-1"),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(processor.processed) != 1 || processor.processed[0] != "evaluation-1" {
		t.Fatalf("expected evaluation-1 processed, got %v", processor.processed)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "receipt-1" {
		t.Fatalf("expected receipt-1 deleted, got %v", client.deleted)
	}
}

func TestHandleMessageDoesNotDeleteOnFailure(t *testing.T) {
	client := &fakeSQS{}
	processor := &fakeProcessor{err: errors.New("phrasing failed")}
	app := &bootstrap.App{PhrasingProcessor: processor}

	body, err := json.Marshal(queue.Message{EvaluationID: "evaluation-2", Version: 1})
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	msg := sqstypes.Message{
		Body:          aws.String(string(body)),
		ReceiptHandle: aws.String("receipt-2"),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", client.deleted)
	}
}

func TestHandleMessageDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	processor := &fakeProcessor{}
	app := &bootstrap.App{PhrasingProcessor: processor}

	msg := sqstypes.Message{
		Body:          aws.String("{not json"),
		ReceiptHandle: aws.String("receipt-3"),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(processor.processed) != 0 {
		t.Fatalf("expected no processing, got %v", processor.processed)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "receipt-3" {
		t.Fatalf("expected receipt-3 deleted, got %v", client.deleted)
	}
}
