package crmsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
)

// InsightsService là lớp mỏng trên engine thuần: fetch các collection một lần
// qua store rồi chạy các hàm tính với mốc thời gian hiện tại.
type InsightsService struct {
	accountService     *AccountService
	contactService     *ContactService
	opportunityService *OpportunityService
}

// NewInsightsService tạo mới InsightsService
func NewInsightsService() (*InsightsService, error) {
	accountService, err := NewAccountService()
	if err != nil {
		return nil, err
	}
	contactService, err := NewContactService()
	if err != nil {
		return nil, err
	}
	opportunityService, err := NewOpportunityService()
	if err != nil {
		return nil, err
	}
	return &InsightsService{
		accountService:     accountService,
		contactService:     contactService,
		opportunityService: opportunityService,
	}, nil
}

// GetPipelineMetrics tính tổng hợp pipeline trên toàn bộ opportunities.
func (s *InsightsService) GetPipelineMetrics(ctx context.Context) (PipelineMetrics, error) {
	opportunities, err := s.opportunityService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return PipelineMetrics{}, err
	}
	return ComputePipelineMetrics(opportunities), nil
}

// GetOpportunityHealth phân loại sức khỏe opportunities tại thời điểm hiện tại.
func (s *InsightsService) GetOpportunityHealth(ctx context.Context) (OpportunityHealth, error) {
	opportunities, err := s.opportunityService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return OpportunityHealth{}, err
	}
	return ComputeOpportunityHealth(opportunities, time.Now().UnixMilli()), nil
}

// GetContactActivities trích lịch sử activity của một contact từ mọi opportunity.
func (s *InsightsService) GetContactActivities(ctx context.Context, contactID primitive.ObjectID) ([]ContactActivity, error) {
	// Kiểm tra contact tồn tại để trả 404 thay vì danh sách rỗng gây hiểu nhầm
	if _, err := s.contactService.FindOneById(ctx, contactID); err != nil {
		return nil, err
	}
	opportunities, err := s.opportunityService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}
	activities := ExtractContactActivities(opportunities, contactID)
	if activities == nil {
		activities = []ContactActivity{}
	}
	return activities, nil
}

// ContactOverdueStatus là kết quả kiểm tra quá hạn liên hệ của một contact.
type ContactOverdueStatus struct {
	ContactID          primitive.ObjectID `json:"contactId"`
	Overdue            bool               `json:"overdue"`
	LastContactDate    int64              `json:"lastContactDate,omitempty"`
	MostRecentActivity int64              `json:"mostRecentActivity,omitempty"`
}

// GetContactOverdue kiểm tra contact có quá hạn liên hệ không, kèm mốc liên hệ
// gần nhất suy ra từ activity nhúng trong các opportunity.
func (s *InsightsService) GetContactOverdue(ctx context.Context, contactID primitive.ObjectID) (ContactOverdueStatus, error) {
	contact, err := s.contactService.FindOneById(ctx, contactID)
	if err != nil {
		return ContactOverdueStatus{}, err
	}
	opportunities, err := s.opportunityService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return ContactOverdueStatus{}, err
	}

	nowMs := time.Now().UnixMilli()
	activities := ExtractContactActivities(opportunities, contactID)
	return ContactOverdueStatus{
		ContactID:          contact.ID,
		Overdue:            IsContactOverdue(&contact, nowMs),
		LastContactDate:    contact.LastContactDate,
		MostRecentActivity: MostRecentContactDate(activities, nowMs),
	}, nil
}

// GetWeeklyReport dựng báo cáo tuần quanh ngày neo anchorMs (0 = tuần hiện tại).
func (s *InsightsService) GetWeeklyReport(ctx context.Context, anchorMs int64) (WeeklyReport, error) {
	nowMs := time.Now().UnixMilli()
	if anchorMs <= 0 {
		anchorMs = nowMs
	}

	opportunities, err := s.opportunityService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return WeeklyReport{}, err
	}
	accounts, err := s.accountService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return WeeklyReport{}, err
	}
	contacts, err := s.contactService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return WeeklyReport{}, err
	}

	return ComputeWeeklyReport(opportunities, accounts, contacts, anchorMs, nowMs), nil
}

// ListOverdueContacts trả về các contact đang quá hạn liên hệ (dùng cho alert mail và worker).
func (s *InsightsService) ListOverdueContacts(ctx context.Context) ([]crmmodels.Contact, error) {
	contacts, err := s.contactService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}
	nowMs := time.Now().UnixMilli()
	var overdue []crmmodels.Contact
	for i := range contacts {
		if IsContactOverdue(&contacts[i], nowMs) {
			overdue = append(overdue, contacts[i])
		}
	}
	return overdue, nil
}
