package consts

const (
	SmsKey                 = "sms:validate:code:"
	NotificationUnreadKey  = "notification:unread:count:"
	PostCounterDirtyKey    = "counter:dirty:post"
	UserCounterDirtyKey    = "counter:dirty:user"
	CommentCounterDirtyKey = "counter:dirty:comment"
)
