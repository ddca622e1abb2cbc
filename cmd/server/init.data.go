package main

import (
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/initsvc"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}

	// Seed user admin từ ADMIN_EMAIL (nếu có config).
	// Token admin được ghi ra log để dùng ngay lần khởi động đầu tiên.
	if err := initService.InitAdminUser(); err != nil {
		log.Warnf("Failed to initialize admin user: %v", err)
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
