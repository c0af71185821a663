package service

import (
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/pkg/util"
	"context"
	"time"
)

type SmsService interface {
	SendSms(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone string, code string) error
}

type SmsServiceImpl struct{}

func NewSmsService() SmsService {
	return &SmsServiceImpl{}
}

func (s *SmsServiceImpl) SendSms(ctx context.Context, phone string) error {
	if !util.ValidPhone(phone) {
		return ErrPhoneInvalid
	}
	code := util.GenerateCode(6)
	err := redis.SetWithExpiration(ctx, consts.SmsKey+phone, code, 10*time.Minute)
	if err != nil {
		return err
	}
	err = util.SendSms(phone, code)
	if err != nil {
		return err
	}
	return nil
}

func (s *SmsServiceImpl) CheckCode(ctx context.Context, phone string, code string) error {
	redisCode, err := redis.GetValue(ctx, consts.SmsKey+phone)
	if err != nil {
		return err
	}
	if redisCode == "" || redisCode != code {
		return ErrCodeIncorrect
	}
	_ = redis.DeleteKey(ctx, consts.SmsKey+phone)
	return nil
}
