package crmhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	crmsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/service"
)

// ProductHandler xử lý các route CRUD cho product, cộng thêm các route sync
// mirror-array với contact.
type ProductHandler struct {
	*basehdl.BaseHandler[crmmodels.Product, crmdto.ProductCreateInput, crmdto.ProductUpdateInput]
	productService *crmsvc.ProductService
	syncService    *crmsvc.CrmSyncService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := crmsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}
	syncService, err := crmsvc.NewCrmSyncService()
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[crmmodels.Product, crmdto.ProductCreateInput, crmdto.ProductUpdateInput](productService.BaseServiceMongoImpl),
		productService: productService,
		syncService:    syncService,
	}, nil
}

// HandleUpdateWithSync cập nhật product và đồng bộ mảng productIds phía contact.
func (h *ProductHandler) HandleUpdateWithSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(crmdto.ProductSyncUpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product, report, err := h.syncService.UpdateProductWithSync(userContext(c), id, input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logSyncReport(c, "product", id, report)
		h.HandleResponse(c, fiber.Map{
			"document":   product,
			"syncReport": report,
		}, nil)
		return nil
	})
}

// HandleDeleteWithSync xóa product kèm dọn back-reference trong contacts.
func (h *ProductHandler) HandleDeleteWithSync(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		report, err := h.syncService.DeleteProductWithSync(userContext(c), id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logSyncReport(c, "product", id, report)
		h.HandleResponse(c, fiber.Map{
			"syncReport": report,
		}, nil)
		return nil
	})
}
