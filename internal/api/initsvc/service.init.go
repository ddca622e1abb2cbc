// Package initsvc chứa InitService dùng để khởi tạo dữ liệu ban đầu (admin user).
// Tách ra package riêng để tránh import cycle giữa auth/service và cmd.
package initsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	authmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	authsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/service"
	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitService khởi tạo dữ liệu mặc định cho hệ thống.
type InitService struct {
	userService *authsvc.UserService
}

// NewInitService tạo mới InitService và đăng ký callback kiểm tra admin
// cho base service (tránh import cycle base -> auth).
func NewInitService() (*InitService, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	basesvc.SetIsAdminFromContextFunc(authsvc.IsAdministratorFromContext)

	return &InitService{
		userService: userService,
	}, nil
}

// InitAdminUser seed user admin từ cấu hình ADMIN_EMAIL nếu chưa tồn tại.
// User admin được đánh dấu IsSystem nên không thể xóa qua API.
// Token truy cập được sinh và ghi ra log để admin dùng ngay lần đầu.
func (h *InitService) InitAdminUser() error {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.AdminEmail == "" {
		log.Warn("⚠️ [INIT] ADMIN_EMAIL chưa được cấu hình, bỏ qua seed admin user")
		return nil
	}

	ctx := basesvc.WithSystemDataInsertAllowed(context.TODO())

	existing, err := h.userService.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check existing admin user: %v", err)
	}

	var admin authmodels.User
	if err == nil {
		admin = existing
		log.Infof("✅ [INIT] Admin user %s đã tồn tại, bỏ qua tạo mới", cfg.AdminEmail)
	} else {
		displayName := cfg.AdminDisplayName
		if displayName == "" {
			displayName = "Administrator"
		}

		now := time.Now().UnixMilli()
		admin, err = h.userService.InsertOne(ctx, authmodels.User{
			Email:       cfg.AdminEmail,
			DisplayName: displayName,
			Role:        authmodels.RoleAdmin,
			NotificationPrefs: authmodels.NotificationPrefs{
				EmailEnabled:         true,
				WeeklyReportEnabled:  true,
				OverdueAlertsEnabled: true,
			},
			IsSystem:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin user: %v", err)
		}
		log.Infof("✅ [INIT] Đã tạo admin user %s", cfg.AdminEmail)
	}

	token, err := h.userService.GenerateToken(&admin)
	if err != nil {
		return fmt.Errorf("failed to generate admin token: %v", err)
	}
	log.Infof("🔑 [INIT] Token admin (%s): %s", admin.Email, token)

	return nil
}

// CountUsers đếm số user hiện có, dùng để kiểm tra hệ thống đã seed chưa.
func (h *InitService) CountUsers(ctx context.Context) (int64, error) {
	return h.userService.CountDocuments(ctx, bson.M{})
}
