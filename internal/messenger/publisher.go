package messenger

import (
	"encoding/json"

	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/mintduck/nft-marketplace/internal/event"
	"go.uber.org/zap"
)

// Publisher forwards marketplace events to the external queue so downstream
// collaborators can consume them without talking to the engine directly.
type Publisher interface {
	Subscribe()
}

type publisher struct {
	messageService MessageService
}

func NewPublisher(messageService MessageService) Publisher {
	return publisher{messageService}
}

// Subscribe registers a single listener so the queue receives events in
// emission order.
func (p publisher) Subscribe() {
	event.AddEventListener(p.publish,
		event.ItemListedEvent,
		event.ItemCanceledEvent,
		event.ListingUpdatedEvent,
		event.ItemBoughtEvent,
		event.ProceedsWithdrawnEvent,
	)
}

type envelope struct {
	Type    event.Type  `json:"type"`
	Payload interface{} `json:"payload"`
}

func (p publisher) publish(msg interface{}) {
	eventType := typeOf(msg)
	if eventType == "" {
		zap.L().Error("[Queue] Unhandled event payload")
		return
	}

	body, err := json.Marshal(envelope{Type: eventType, Payload: msg})
	if err != nil {
		zap.L().With(zap.Error(err)).Error("[Queue] Failed to encode event")
		return
	}

	if err := p.messageService.SendMessage(body); err != nil {
		zap.L().With(zap.String("type", string(eventType))).Warn("[Queue] Event not published")
	}
}

func typeOf(msg interface{}) event.Type {
	switch msg.(type) {
	case entity.ItemListed:
		return event.ItemListedEvent
	case entity.ItemCanceled:
		return event.ItemCanceledEvent
	case entity.ListingUpdated:
		return event.ListingUpdatedEvent
	case entity.ItemBought:
		return event.ItemBoughtEvent
	case entity.ProceedsWithdrawn:
		return event.ProceedsWithdrawnEvent
	}
	return ""
}
