package crmhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	crmsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
)

// OpportunityHandler xử lý các route CRUD cho opportunity, các thao tác
// activity/blocker nhúng, và các route insight/báo cáo tuần của pipeline.
type OpportunityHandler struct {
	*basehdl.BaseHandler[crmmodels.Opportunity, crmdto.OpportunityCreateInput, crmdto.OpportunityUpdateInput]
	opportunityService *crmsvc.OpportunityService
	insightsService    *crmsvc.InsightsService
}

// NewOpportunityHandler tạo mới OpportunityHandler
func NewOpportunityHandler() (*OpportunityHandler, error) {
	opportunityService, err := crmsvc.NewOpportunityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create opportunity service: %w", err)
	}
	insightsService, err := crmsvc.NewInsightsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create insights service: %w", err)
	}
	return &OpportunityHandler{
		BaseHandler:        basehdl.NewBaseHandler[crmmodels.Opportunity, crmdto.OpportunityCreateInput, crmdto.OpportunityUpdateInput](opportunityService.BaseServiceMongoImpl),
		opportunityService: opportunityService,
		insightsService:    insightsService,
	}, nil
}

// parseSubIDParam đọc ObjectID từ một path param con (activityId, blockerId)
func parseSubIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidInput
	}
	return id, nil
}

// HandleAddActivity thêm một activity mới (trạng thái Scheduled) vào opportunity
func (h *OpportunityHandler) HandleAddActivity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(crmdto.ActivityAddInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opp, err := h.opportunityService.AddActivity(userContext(c), id, input)
		h.HandleResponse(c, opp, err)
		return nil
	})
}

// HandleCompleteActivity hoàn thành một activity. Contact liên quan được cập nhật
// lastContactDate (chỉ tiến, không lùi).
func (h *OpportunityHandler) HandleCompleteActivity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		activityID, err := parseSubIDParam(c, "activityId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(crmdto.ActivityCompleteInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opp, err := h.opportunityService.CompleteActivity(userContext(c), id, activityID, input)
		if err == nil {
			logger.LogAction("activity_complete", c, map[string]interface{}{
				"opportunity_id": id.Hex(),
				"activity_id":    activityID.Hex(),
			})
		}
		h.HandleResponse(c, opp, err)
		return nil
	})
}

// HandleCancelActivity hủy một activity chưa hoàn thành
func (h *OpportunityHandler) HandleCancelActivity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		activityID, err := parseSubIDParam(c, "activityId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opp, err := h.opportunityService.CancelActivity(userContext(c), id, activityID)
		h.HandleResponse(c, opp, err)
		return nil
	})
}

// HandleAddBlocker thêm một blocker vào opportunity
func (h *OpportunityHandler) HandleAddBlocker(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(crmdto.BlockerAddInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opp, err := h.opportunityService.AddBlocker(userContext(c), id, input)
		h.HandleResponse(c, opp, err)
		return nil
	})
}

// HandleResolveBlocker đánh dấu một blocker đã được giải quyết (idempotent)
func (h *OpportunityHandler) HandleResolveBlocker(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		blockerID, err := parseSubIDParam(c, "blockerId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opp, err := h.opportunityService.ResolveBlocker(userContext(c), id, blockerID)
		h.HandleResponse(c, opp, err)
		return nil
	})
}

// HandlePipelineInsights trả về tổng hợp pipeline theo stage/priority/region/product
func (h *OpportunityHandler) HandlePipelineInsights(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		metrics, err := h.insightsService.GetPipelineMetrics(c.Context())
		h.HandleResponse(c, metrics, err)
		return nil
	})
}

// HandleHealthInsights phân loại sức khỏe opportunities (stalled/atRisk/closingSoon/healthy)
func (h *OpportunityHandler) HandleHealthInsights(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		health, err := h.insightsService.GetOpportunityHealth(c.Context())
		h.HandleResponse(c, health, err)
		return nil
	})
}

// HandleWeeklyReport dựng báo cáo tuần. Query param anchor (unix milli) chọn tuần,
// bỏ trống = tuần hiện tại.
func (h *OpportunityHandler) HandleWeeklyReport(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		anchorMs, err := strconv.ParseInt(c.Query("anchor", "0"), 10, 64)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		report, err := h.insightsService.GetWeeklyReport(c.Context(), anchorMs)
		h.HandleResponse(c, report, err)
		return nil
	})
}

// HandleSendWeeklyReport dựng và gửi báo cáo tuần qua email cho các user đã đăng ký
func (h *OpportunityHandler) HandleSendWeeklyReport(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		anchorMs, err := strconv.ParseInt(c.Query("anchor", "0"), 10, 64)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		sent, err := h.insightsService.SendWeeklyReport(c.Context(), anchorMs)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"recipients": sent,
		}, nil)
		return nil
	})
}
