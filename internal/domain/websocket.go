package domain

const ChannelFeed = "feed"

const (
	WsEventPostCreated    = "post_created"
	WsEventCommentCreated = "comment_created"
	WsEventPostLiked      = "post_liked"
)

type WsFeedEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}
