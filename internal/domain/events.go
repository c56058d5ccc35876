package domain

// Bus topics published by the application services.
const (
	TopicUserRegistered = "user_registered"
	TopicUserConfirmed  = "user_confirmed"
	TopicPostCreated    = "post_created"
	TopicCommentCreated = "comment_created"
	TopicPostLiked      = "post_liked"
)
