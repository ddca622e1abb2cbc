// Package authhdl xử lý các route HTTP cho domain auth (User).
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/dto"
	models "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	authsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/service"
	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
)

// UserHandler xử lý các route CRUD cho user, cộng thêm hồ sơ cá nhân và cấp token
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput](userService.BaseServiceMongoImpl),
		userService: userService,
	}, nil
}

// HandleGetMe trả về thông tin user đang đăng nhập (đọc qua users cache)
func (h *UserHandler) HandleGetMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _ := c.Locals("user_id").(string)
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		user, err := authsvc.GetUserCache().GetByID(c.Context(), objID)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleUpdateMyProfile cho user tự cập nhật hồ sơ của mình (displayName, jobTitle,
// phone, notificationPrefs). Email và role không đổi được qua endpoint này.
func (h *UserHandler) HandleUpdateMyProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _ := c.Locals("user_id").(string)
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		input := new(authdto.UserProfileUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx := authsvc.SetUserIDToContext(c.Context(), userID)
		user, err := h.userService.UpdateProfile(ctx, objID, input)
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleInvalidateCache xóa users cache, buộc lần đọc kế tiếp tải lại từ DB.
// Dùng khi dữ liệu user bị sửa ngoài luồng API (ví dụ chỉnh trực tiếp trên DB).
func (h *UserHandler) HandleInvalidateCache(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		authsvc.GetUserCache().Invalidate()
		h.HandleResponse(c, fiber.Map{"invalidated": true}, nil)
		return nil
	})
}

// HandleIssueToken cấp token cho một user (chỉ admin gọi được).
// Token trả về trong response để admin chuyển cho user ngoài luồng.
func (h *UserHandler) HandleIssueToken(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.UserTokenIssueInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		user, err := h.userService.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		token, err := h.userService.GenerateToken(&user)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				"Không thể tạo token",
				common.StatusInternalServerError,
				nil,
			))
			return nil
		}

		h.HandleResponse(c, fiber.Map{
			"userId": user.ID.Hex(),
			"email":  user.Email,
			"token":  token,
		}, nil)
		return nil
	})
}
