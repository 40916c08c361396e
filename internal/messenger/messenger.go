package messenger

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintduck/nft-marketplace/internal/config"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(body []byte) error
	PollMessages(chn chan<- *sqs.Message)
	DeleteMessage(msg *sqs.Message) error
}

type Messenger struct {
	sqsClient *sqs.SQS
	queueUrl  string
}

func NewMessenger() MessageService {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(config.Get().Aws.Region),
		Credentials: credentials.NewStaticCredentials(
			config.Get().Aws.AccessKey,
			config.Get().Aws.SecretKey,
			"",
		),
	}))

	return Messenger{
		sqsClient: sqs.New(sess),
		queueUrl:  config.Get().Aws.QueueUrl,
	}
}

func (m Messenger) SendMessage(body []byte) error {
	_, err := m.sqsClient.SendMessage(&sqs.SendMessageInput{
		QueueUrl:    aws.String(m.queueUrl),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to send message")
	}

	return err
}

func (m Messenger) PollMessages(chn chan<- *sqs.Message) {
	for {
		output, err := m.sqsClient.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(m.queueUrl),
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(15),
		})
		if err != nil {
			zap.L().With(zap.Error(err)).Error("[Queue] Failed to fetch messages")
			continue
		}

		for _, message := range output.Messages {
			chn <- message
		}
	}
}

func (m Messenger) DeleteMessage(msg *sqs.Message) error {
	_, err := m.sqsClient.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      aws.String(m.queueUrl),
		ReceiptHandle: msg.ReceiptHandle,
	})

	return err
}
