package service

import (
	"context"
	"encoding/json"

	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the background sync worker. It listens for sync
// triggers and drains the matching session's action queue.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	queueService IQueueService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	queueService IQueueService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		queueService: queueService,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SyncTriggerMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "failed to unmarshal sync trigger", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	result, err := cs.queueService.SyncPendingActions(ctx, payload.SessionId)
	if err != nil {
		cs.logger.Error("ConsumerService", "queue drain failed", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("ConsumerService", "queue drained", map[string]interface{}{
		"session_id":  payload.SessionId,
		"synced":      result.Synced,
		"failed":      result.Failed,
		"rolled_back": result.RolledBack,
		"remaining":   result.Remaining,
	})
	msg.Ack()
}
