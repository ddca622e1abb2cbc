// Package mailer - Test điều kiện cấu hình và guard người nhận.
package mailer

import (
	"testing"

	"github.com/skuck001/iOlPartnerSolutions-sub001/config"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

func TestIsConfigured(t *testing.T) {
	saved := global.MongoDB_ServerConfig
	defer func() { global.MongoDB_ServerConfig = saved }()

	global.MongoDB_ServerConfig = nil
	if IsConfigured() {
		t.Error("Config nil thì SMTP không được coi là đã cấu hình")
	}

	global.MongoDB_ServerConfig = &config.Configuration{SMTPHost: "smtp.example.com"}
	if IsConfigured() {
		t.Error("Thiếu SMTPFromEmail thì chưa được coi là đã cấu hình")
	}

	global.MongoDB_ServerConfig = &config.Configuration{
		SMTPHost:      "smtp.example.com",
		SMTPFromEmail: "noreply@example.com",
	}
	if !IsConfigured() {
		t.Error("Đủ host và from email phải được coi là đã cấu hình")
	}
}

func TestSendHTML_ChuaCauHinhTraVeLoi(t *testing.T) {
	saved := global.MongoDB_ServerConfig
	defer func() { global.MongoDB_ServerConfig = saved }()

	global.MongoDB_ServerConfig = nil
	if err := SendHTML([]string{"a@example.com"}, "Test", "<p>x</p>"); err == nil {
		t.Error("SMTP chưa cấu hình phải trả về lỗi")
	}
}

func TestSendHTML_KhongCoNguoiNhanLaNoOp(t *testing.T) {
	saved := global.MongoDB_ServerConfig
	defer func() { global.MongoDB_ServerConfig = saved }()

	global.MongoDB_ServerConfig = &config.Configuration{
		SMTPHost:      "smtp.example.com",
		SMTPFromEmail: "noreply@example.com",
	}
	// Danh sách người nhận rỗng không được mở kết nối SMTP
	if err := SendHTML(nil, "Test", "<p>x</p>"); err != nil {
		t.Errorf("Không có người nhận phải là no-op, nhận được lỗi: %v", err)
	}
}
