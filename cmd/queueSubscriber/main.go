package main

import (
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintduck/nft-marketplace/internal/config"
	"github.com/mintduck/nft-marketplace/internal/config/di"
	"github.com/mintduck/nft-marketplace/internal/dev"
	"go.uber.org/zap"
)

// Tails the marketplace notification queue. Useful for verifying what
// downstream collaborators will receive.
func main() {
	config.Init()

	container, err := di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	messageService := container.GetMessenger()

	zap.L().Info("Subscribing to marketplace notifications")

	messages := make(chan *sqs.Message, 10)
	go messageService.PollMessages(messages)

	for message := range messages {
		zap.L().With(zap.String("body", *message.Body)).Info("Notification received")
		dev.Dump(message)

		if err := messageService.DeleteMessage(message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}
	}
}
