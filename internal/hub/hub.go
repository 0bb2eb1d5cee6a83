// Package hub fans out newly created chat messages to the websocket
// connections currently subscribed to a chat request. It carries no
// durability: disconnected subscribers re-fetch history on reconnect.
package hub

import (
	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/domain"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

// subscriptionBuffer bounds how far a slow reader may fall behind
// before it is dropped.
const subscriptionBuffer = 32

type Subscription struct {
	RequestID uuid.UUID
	Events    chan *domain.Message

	hub *Hub
}

// Close cancels the subscription. Safe to call once; the consumer owns
// the subscription lifetime.
func (s *Subscription) Close() {
	s.hub.unsubscribe <- s
}

type publication struct {
	requestID uuid.UUID
	message   *domain.Message
}

type Hub struct {
	subscribe   chan *Subscription
	unsubscribe chan *Subscription
	publish     chan publication
	subs        map[uuid.UUID]map[*Subscription]struct{}
	log         logger.Logger
}

func New(log logger.Logger) *Hub {
	return &Hub{
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),
		publish:     make(chan publication, 64),
		subs:        make(map[uuid.UUID]map[*Subscription]struct{}),
		log:         log,
	}
}

// Run owns all subscription state; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.subscribe:
			set := h.subs[sub.RequestID]
			if set == nil {
				set = make(map[*Subscription]struct{})
				h.subs[sub.RequestID] = set
			}
			set[sub] = struct{}{}

		case sub := <-h.unsubscribe:
			if set, ok := h.subs[sub.RequestID]; ok {
				if _, ok := set[sub]; ok {
					delete(set, sub)
					close(sub.Events)
					if len(set) == 0 {
						delete(h.subs, sub.RequestID)
					}
				}
			}

		case pub := <-h.publish:
			for sub := range h.subs[pub.requestID] {
				select {
				case sub.Events <- pub.message:
				default:
					// Slow consumer: drop it, the client will
					// re-sync from history when it reconnects.
					delete(h.subs[pub.requestID], sub)
					close(sub.Events)
					h.log.Warn("Dropped slow chat subscriber", "request_id", pub.requestID)
				}
			}
		}
	}
}

// Subscribe registers for messages created on one chat request.
func (h *Hub) Subscribe(requestID uuid.UUID) *Subscription {
	sub := &Subscription{
		RequestID: requestID,
		Events:    make(chan *domain.Message, subscriptionBuffer),
		hub:       h,
	}
	h.subscribe <- sub
	return sub
}

// Publish delivers a message to all current subscribers of its request.
func (h *Hub) Publish(message *domain.Message) {
	h.publish <- publication{requestID: message.RequestID, message: message}
}
