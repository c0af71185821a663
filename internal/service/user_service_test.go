package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"Mingle/internal/pkg/consts"
	"Mingle/internal/pkg/redis"
	"Mingle/internal/pkg/security"
	"Mingle/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepo(db), NewSmsService())
}

// sentSmsCode 从缓存里取出刚下发的验证码
func sentSmsCode(t *testing.T, phone string) string {
	t.Helper()
	code, err := redis.GetValue(context.Background(), consts.SmsKey+phone)
	require.NoError(t, err)
	require.NotEmpty(t, code)
	return code
}

func TestLoginByPhoneRegistersNewUser(t *testing.T) {
	db := newTestEnv(t)
	svc := newUserService(db)
	smsSvc := NewSmsService()
	ctx := context.Background()

	phone := "13800138000"
	require.NoError(t, smsSvc.SendSms(ctx, phone))
	code := sentSmsCode(t, phone)

	result, err := svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: code})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User)
	assert.True(t, strings.HasPrefix(result.User.Nickname, "用户"))

	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.UserID, claims.UserID)

	// 同一手机号再次登录命中已有账号
	require.NoError(t, smsSvc.SendSms(ctx, phone))
	again, err := svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: sentSmsCode(t, phone)})
	require.NoError(t, err)
	assert.Equal(t, result.User.UserID, again.User.UserID)
	assert.EqualValues(t, 1, countRows(t, db, &model.User{}))
}

func TestLoginByPhoneCodeChecks(t *testing.T) {
	db := newTestEnv(t)
	svc := newUserService(db)
	smsSvc := NewSmsService()
	ctx := context.Background()

	phone := "13800138001"

	_, err := svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: "12345", Code: "000000"})
	assert.ErrorIs(t, err, ErrPhoneInvalid)

	// 未下发验证码
	_, err = svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: "000000"})
	assert.ErrorIs(t, err, ErrCodeIncorrect)

	require.NoError(t, smsSvc.SendSms(ctx, phone))
	code := sentSmsCode(t, phone)

	_, err = svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: code + "x"})
	assert.ErrorIs(t, err, ErrCodeIncorrect)

	// 验证码一次性：登录成功后旧码作废
	_, err = svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: code})
	require.NoError(t, err)
	_, err = svc.LoginByPhone(ctx, &dto.LoginByPhoneDTO{Phone: phone, Code: code})
	assert.ErrorIs(t, err, ErrCodeIncorrect)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := newTestEnv(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "登录用户")
	token, err := security.GenerateToken(user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	signature, err := security.ExtractSignature(token)
	require.NoError(t, err)
	val, err := redis.GetValue(ctx, signature)
	require.NoError(t, err)
	assert.NotEmpty(t, val)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestEnv(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "旧昵称")

	nickname := "  新昵称  "
	bio := "这是个人简介"
	updated, err := svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileDTO{Nickname: &nickname, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "新昵称", updated.Nickname)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)

	blank := "   "
	_, err = svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileDTO{Nickname: &blank})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.UpdateProfile(ctx, 9999, &dto.UpdateProfileDTO{Nickname: &nickname})
	assert.ErrorIs(t, err, ErrUserNotFound)

	// 不传的字段保持原值
	profile, err := svc.GetUserProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "新昵称", profile.Nickname)
}

func TestSearchUsers(t *testing.T) {
	db := newTestEnv(t)
	svc := newUserService(db)
	ctx := context.Background()

	createTestUser(t, db, "爬山爱好者")
	createTestUser(t, db, "爱爬山的人")
	createTestUser(t, db, "读书人")

	_, err := svc.SearchUsers(ctx, " 山 ", 0, 20)
	assert.ErrorIs(t, err, ErrParamInvalid)

	page, err := svc.SearchUsers(ctx, "爬山", 0, 20)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.TotalCount)
}
