package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	authsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
)

// hasPermission kiểm tra role của user có quyền thực hiện permission không.
// Admin có mọi quyền. User thường đọc được mọi collection và ghi được các
// collection CRM; thao tác ghi trên User chỉ dành cho admin.
func hasPermission(role string, permission string) bool {
	if role == models.RoleAdmin {
		return true
	}

	parts := strings.SplitN(permission, ".", 2)
	if len(parts) != 2 {
		return false
	}
	entity, action := parts[0], parts[1]

	if action == "Read" {
		return true
	}

	switch entity {
	case "Account", "Contact", "Product", "Opportunity":
		return action == "Insert" || action == "Update" || action == "Delete"
	}
	return false
}

// AuthMiddleware middleware xác thực cho Fiber.
// Verify JWT, nạp user qua users cache, kiểm tra permission theo role.
// requirePermission rỗng nghĩa là chỉ cần đăng nhập.
func AuthMiddleware(requirePermission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := authsvc.VerifyToken(parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			HandleErrorResponse(c, err)
			return nil
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Token hợp lệ nhưng user phải còn tồn tại trong hệ thống
		user, err := authsvc.GetUserCache().GetByID(c.Context(), userID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": claims.UserID,
				"path":    c.Path(),
				"error":   err.Error(),
			}).Warn("❌ [AUTH] User not found for valid token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user_email", user.Email)
		c.Locals("user_role", user.Role)

		// Không yêu cầu permission cụ thể: chỉ cần xác thực là đủ
		if requirePermission == "" {
			return c.Next()
		}

		if !hasPermission(user.Role, requirePermission) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":             user.ID.Hex(),
				"user_email":          user.Email,
				"user_role":           user.Role,
				"required_permission": requirePermission,
				"path":                c.Path(),
			}).Warn("❌ [AUTH] User does not have required permission")
			HandleErrorResponse(c, common.ErrForbidden)
			return nil
		}

		// Lưu permission name vào context để handler sử dụng khi cần
		c.Locals("permission_name", requirePermission)
		return c.Next()
	}
}
