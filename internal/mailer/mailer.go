// Package mailer gửi email qua SMTP theo cấu hình server.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

// IsConfigured kiểm tra SMTP đã được cấu hình chưa
func IsConfigured() bool {
	cfg := global.MongoDB_ServerConfig
	return cfg != nil && cfg.SMTPHost != "" && cfg.SMTPFromEmail != ""
}

// SendHTML gửi một email HTML tới danh sách người nhận.
// Trả về lỗi nếu SMTP chưa được cấu hình hoặc gửi thất bại.
func SendHTML(recipients []string, subject, htmlBody string) error {
	if !IsConfigured() {
		return common.NewError(
			common.ErrCodeBusinessState,
			"SMTP chưa được cấu hình",
			common.StatusInternalServerError,
			nil,
		)
	}
	if len(recipients) == 0 {
		return nil
	}

	cfg := global.MongoDB_ServerConfig
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", cfg.SMTPFromName, cfg.SMTPFromEmail))
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return dialer.DialAndSend(msg)
}
