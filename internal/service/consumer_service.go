package service

import (
	"context"
	"encoding/json"
	"log"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the transactional email queue. SMTP sends are
// slow and flaky; running them off-request keeps checkout latency flat.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, emailService mailer.IEmailService) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.EmailJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal email job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	var err error
	switch payload.Kind {
	case dto.EmailJobOrderConfirmation:
		err = cs.emailService.SendOrderConfirmation(payload.To, payload.OrderId.String(), payload.Total)
	case dto.EmailJobOrderStatusUpdate:
		err = cs.emailService.SendOrderStatusUpdate(payload.To, payload.OrderId.String(), payload.Status)
	default:
		log.Printf("[WARN] Unknown email job kind: %s", payload.Kind)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Failed to send %s email to %s: %v", payload.Kind, payload.To, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
