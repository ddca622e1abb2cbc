// Package router đăng ký các route thuộc domain Auth: User CRUD, hồ sơ cá nhân, cấp token.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/handler"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/middleware"
	apirouter "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("create user handler: %w", err)
	}

	// CRUD đầy đủ cho users; các thao tác ghi yêu cầu quyền User.* (chỉ admin có)
	r.RegisterCRUDRoutes(v1, "/users", userHandler, apirouter.ReadWriteConfig, "User")

	// Hồ sơ cá nhân: chỉ cần đăng nhập, user thao tác trên chính mình
	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetMe)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateMyProfile)

	// Cấp token và xóa users cache: chỉ admin (quyền User.Update)
	issueTokenMiddleware := middleware.AuthMiddleware("User.Update")
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "POST", "/issue-token", []fiber.Handler{issueTokenMiddleware}, userHandler.HandleIssueToken)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "POST", "/cache/invalidate", []fiber.Handler{issueTokenMiddleware}, userHandler.HandleInvalidateCache)

	return nil
}
