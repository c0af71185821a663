package util

import (
	"Mingle/internal/api/config"
	"fmt"
	log "log/slog"
	"math/rand"
	"net/url"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
)

const SuccessResp = "0"
const digits = "0123456789"

var phoneRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidPhone 校验手机号格式
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func SendSms(phone string, code string) error {
	smsCfg := config.Cfg.SMS
	if smsCfg.MockSend {
		log.Info(fmt.Sprintf("模拟发送给 %s 的验证码为 %s", phone, code))
		return nil
	}

	content := url.QueryEscape(fmt.Sprintf("【Mingle】您的验证码为 %s 。", code))

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"u": smsCfg.Username,
			"p": smsCfg.ApiKey,
			"m": phone,
			"c": content,
		}).
		Get(smsCfg.URL)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("sms send failed: %s", resp.Status())
	}
	if resp.String() != SuccessResp {
		return fmt.Errorf("sms send failed: response code %s", resp.String())
	}
	log.Info(fmt.Sprintf("短信接口响应: %s", resp.String()))
	return nil
}

func GenerateCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[r.Intn(len(digits))]
	}
	return string(code)
}
