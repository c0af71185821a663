package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrPhoneInvalid          = errors.New("手机号格式错误")
	ErrCodeIncorrect         = errors.New("验证码错误")
	ErrPostNotFound          = errors.New("帖子不存在")
	ErrPostTitleEmpty        = errors.New("帖子标题不能为空")
	ErrPostContentEmpty      = errors.New("帖子内容不能为空")
	ErrCommentNotFound       = errors.New("评论不存在")
	ErrCommentContentEmpty   = errors.New("评论内容不能为空")
	ErrCommentParentNotFound = errors.New("父评论不存在")
	ErrCommentParentMismatch = errors.New("父评论不属于该帖子")
	ErrActionDuplicate       = errors.New("重复操作")
	ErrActionNotExist        = errors.New("操作不存在")
	ErrUserFollowSelf        = errors.New("用户不能关注自己")
	ErrUserFollowExist       = errors.New("用户已关注")
	ErrUserFollowNotExist    = errors.New("用户未关注")
	ErrNotificationNotFound  = errors.New("通知不存在")
	ErrFileNotSupported      = errors.New("不支持的文件类型")
	UnauthorizedError        = errors.New("权限不足")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrPhoneInvalid:          BadRequest,
	ErrCodeIncorrect:         Unauthorized,
	ErrPostNotFound:          NotFound,
	ErrPostTitleEmpty:        BadRequest,
	ErrPostContentEmpty:      BadRequest,
	ErrCommentNotFound:       NotFound,
	ErrCommentContentEmpty:   BadRequest,
	ErrCommentParentNotFound: NotFound,
	ErrCommentParentMismatch: BadRequest,
	ErrActionDuplicate:       BadRequest,
	ErrActionNotExist:        BadRequest,
	ErrUserFollowSelf:        BadRequest,
	ErrUserFollowExist:       BadRequest,
	ErrUserFollowNotExist:    BadRequest,
	ErrNotificationNotFound:  NotFound,
	ErrFileNotSupported:      BadRequest,
	UnauthorizedError:        Unauthorized,
	UnExpectedError:          InternalServerError,
}
