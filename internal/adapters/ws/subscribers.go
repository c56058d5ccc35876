package ws

import (
	"social/internal/domain"
	"social/internal/event"
)

// Subscribe forwards post activity from the bus to feed subscribers.
func Subscribe(bus *event.Bus, hub *Hub) {
	bus.Subscribe(domain.TopicPostCreated, func(e any) {
		if evt, ok := e.(domain.EventPostCreated); ok {
			hub.Broadcast(&domain.WsFeedEvent{
				Channel: domain.ChannelFeed,
				Event:   domain.WsEventPostCreated,
				Payload: evt.Post,
			})
		}
	})

	bus.Subscribe(domain.TopicCommentCreated, func(e any) {
		if evt, ok := e.(domain.EventCommentCreated); ok {
			hub.Broadcast(&domain.WsFeedEvent{
				Channel: domain.ChannelFeed,
				Event:   domain.WsEventCommentCreated,
				Payload: evt.Comment,
			})
		}
	})

	bus.Subscribe(domain.TopicPostLiked, func(e any) {
		if evt, ok := e.(domain.EventPostLiked); ok {
			hub.Broadcast(&domain.WsFeedEvent{
				Channel: domain.ChannelFeed,
				Event:   domain.WsEventPostLiked,
				Payload: evt.Like,
			})
		}
	})
}
