package consts

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	FeedTypeRecommended = "recommended"
	FeedTypeFollowing   = "following"
)
