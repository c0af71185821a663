package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/repository"
	"context"
	"strconv"
	"time"
)

const unreadCountExpiration = 10 * time.Minute

type NotificationService interface {
	GetNotifications(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.NotificationDTO], error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo, userRepo repository.UserRepo) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *NotificationServiceImpl) GetNotifications(ctx context.Context, userID uint64, page, limit int) (*dto.PageDTO[*dto.NotificationDTO], error) {
	notifications, total, err := s.notificationRepo.GetNotificationsByUserID(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, err
	}

	actorIDSet := make(map[uint64]bool)
	for _, n := range notifications {
		actorIDSet[n.ActorID] = true
	}
	actorIDs := make([]uint64, 0, len(actorIDSet))
	for id := range actorIDSet {
		actorIDs = append(actorIDs, id)
	}
	actors, err := s.userRepo.GetUserByIds(ctx, actorIDs)
	if err != nil {
		return nil, err
	}
	actorMap := toUserDTOMap(actors)

	items := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, toNotificationDTO(n, actorMap[n.ActorID]))
	}
	return dto.NewPageDTO(items, page, limit, total), nil
}

// GetUnreadCount 未读数走缓存，未命中回源并回填
func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := consts.NotificationUnreadKey + strconv.FormatUint(userID, 10)

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		if count, parseErr := strconv.ParseInt(valStr, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, unreadCountExpiration)
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	notification, err := s.notificationRepo.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.UserID != userID {
		return UnauthorizedError
	}
	if notification.IsRead {
		return nil
	}

	if err = s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	invalidateUnreadCount(ctx, userID)
	return nil
}

func toNotificationDTO(notification *model.Notification, actor *dto.UserDTO) *dto.NotificationDTO {
	return &dto.NotificationDTO{
		ID:        notification.ID,
		Type:      notification.Type,
		Actor:     actor,
		RelatedID: notification.RelatedID,
		Content:   notification.Content,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Format(timeLayout),
	}
}
