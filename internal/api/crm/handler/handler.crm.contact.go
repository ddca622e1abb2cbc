package crmhdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/service"
	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	crmsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
)

// ContactHandler xử lý các route CRUD cho contact, cộng thêm các route sync
// mirror-array với product và các route insight theo contact.
type ContactHandler struct {
	*basehdl.BaseHandler[crmmodels.Contact, crmdto.ContactCreateInput, crmdto.ContactUpdateInput]
	contactService  *crmsvc.ContactService
	syncService     *crmsvc.CrmSyncService
	insightsService *crmsvc.InsightsService
}

// NewContactHandler tạo mới ContactHandler
func NewContactHandler() (*ContactHandler, error) {
	contactService, err := crmsvc.NewContactService()
	if err != nil {
		return nil, fmt.Errorf("failed to create contact service: %w", err)
	}
	syncService, err := crmsvc.NewCrmSyncService()
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	insightsService, err := crmsvc.NewInsightsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create insights service: %w", err)
	}
	return &ContactHandler{
		BaseHandler:     basehdl.NewBaseHandler[crmmodels.Contact, crmdto.ContactCreateInput, crmdto.ContactUpdateInput](contactService.BaseServiceMongoImpl),
		contactService:  contactService,
		syncService:     syncService,
		insightsService: insightsService,
	}, nil
}

// parseIDParam đọc và kiểm tra ObjectID từ path param id
func parseIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidInput
	}
	return id, nil
}

// userContext gắn user_id từ token (nếu có) vào context cho tầng service
func userContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
		ctx = authsvc.SetUserIDToContext(ctx, userIDStr)
	}
	return ctx
}

// logSyncReport ghi audit log cho một lượt fan-out đồng bộ quan hệ.
// Partial failure không làm fail request nên audit log là nơi duy nhất quan sát được chúng.
func logSyncReport(c fiber.Ctx, resourceType string, id primitive.ObjectID, report *crmsvc.SyncReport) {
	if report == nil {
		return
	}
	logger.LogSync(resourceType, id.Hex(), c, map[string]interface{}{
		"attempted": report.Attempted,
		"added":     report.Added,
		"removed":   report.Removed,
		"errors":    len(report.Errors),
	})
}

// HandleUpdateWithSync cập nhật contact và đồng bộ mảng contactIds phía product.
// Response gồm document đã cập nhật và báo cáo sync (lỗi fan-out không làm fail request).
func (h *ContactHandler) HandleUpdateWithSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(crmdto.ContactSyncUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		contact, report, err := h.syncService.UpdateContactWithSync(userContext(c), id, input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logSyncReport(c, "contact", id, report)
		h.HandleResponse(c, fiber.Map{
			"document":   contact,
			"syncReport": report,
		}, nil)
		return nil
	})
}

// HandleDeleteWithSync xóa contact kèm dọn back-reference trong products.
func (h *ContactHandler) HandleDeleteWithSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		report, err := h.syncService.DeleteContactWithSync(userContext(c), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logSyncReport(c, "contact", id, report)
		h.HandleResponse(c, fiber.Map{
			"syncReport": report,
		}, nil)
		return nil
	})
}

// HandleGetActivities trả về lịch sử activity của contact, gom từ mọi opportunity.
func (h *ContactHandler) HandleGetActivities(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		activities, err := h.insightsService.GetContactActivities(c.Context(), id)
		h.HandleResponse(c, activities, err)
		return nil
	})
}

// HandleGetOverdue kiểm tra contact có quá hạn liên hệ không.
func (h *ContactHandler) HandleGetOverdue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		status, err := h.insightsService.GetContactOverdue(c.Context(), id)
		h.HandleResponse(c, status, err)
		return nil
	})
}
