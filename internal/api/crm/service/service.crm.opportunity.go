package crmsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/utility"
)

// OpportunityService là cấu trúc chứa các phương thức liên quan đến opportunity,
// bao gồm các thao tác trên activity và blocker nhúng.
type OpportunityService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Opportunity]
	contactService *ContactService
}

// NewOpportunityService tạo mới OpportunityService
func NewOpportunityService() (*OpportunityService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Opportunities)
	if !exist {
		return nil, fmt.Errorf("failed to get opportunities collection: %v", common.ErrNotFound)
	}
	contactService, err := NewContactService()
	if err != nil {
		return nil, err
	}
	return &OpportunityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Opportunity](coll),
		contactService:       contactService,
	}, nil
}

// AddActivity thêm activity mới vào opportunity, trạng thái khởi tạo luôn là Scheduled.
func (s *OpportunityService) AddActivity(ctx context.Context, oppID primitive.ObjectID, input *crmdto.ActivityAddInput) (crmmodels.Opportunity, error) {
	var zero crmmodels.Opportunity

	opp, err := s.FindOneById(ctx, oppID)
	if err != nil {
		return zero, err
	}

	activity := crmmodels.Activity{
		ActivityID: primitive.NewObjectID(),
		Type:       input.Type,
		Status:     crmmodels.ActivityStatusScheduled,
		DateTime:   input.DateTime,
		Notes:      input.Notes,
	}
	if input.AssignedTo != "" {
		assignedTo, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return zero, common.ErrInvalidInput
		}
		activity.AssignedTo = assignedTo
	}
	if len(input.RelatedContactIDs) > 0 {
		activity.RelatedContactIDs = utility.StringArray2ObjectIDArray(input.RelatedContactIDs)
	}

	activities := append(opp.Activities, activity)
	return s.UpdateById(ctx, oppID, &basesvc.UpdateData{
		Set: map[string]interface{}{"activities": activities},
	})
}

// CompleteActivity chuyển activity sang Completed và set CompletedAt đúng một lần.
// Activity đã Completed là bất biến; đã Cancelled thì không hoàn thành được.
// Hoàn thành xong, lastContactDate của các contact liên quan được đẩy tiến tới mốc hoàn thành.
func (s *OpportunityService) CompleteActivity(ctx context.Context, oppID primitive.ObjectID, activityID primitive.ObjectID, input *crmdto.ActivityCompleteInput) (crmmodels.Opportunity, error) {
	var zero crmmodels.Opportunity

	opp, err := s.FindOneById(ctx, oppID)
	if err != nil {
		return zero, err
	}

	idx := findActivityIndex(opp.Activities, activityID)
	if idx < 0 {
		return zero, common.ErrNotFound
	}
	activity := opp.Activities[idx]

	if activity.Status == crmmodels.ActivityStatusCompleted {
		return zero, common.ErrActivityCompleted
	}
	if activity.Status == crmmodels.ActivityStatusCancelled {
		return zero, common.ErrInvalidState
	}

	completedAt := input.CompletedAt
	if completedAt <= 0 {
		completedAt = time.Now().UnixMilli()
	}
	activity.Status = crmmodels.ActivityStatusCompleted
	activity.CompletedAt = completedAt
	if input.Notes != "" {
		activity.Notes = input.Notes
	}
	opp.Activities[idx] = activity

	updated, err := s.UpdateById(ctx, oppID, &basesvc.UpdateData{
		Set: map[string]interface{}{"activities": opp.Activities},
	})
	if err != nil {
		return zero, err
	}

	// Duy trì field dẫn xuất: liên hệ vừa diễn ra nên mốc liên hệ cuối tiến tới completedAt.
	// Activity đã hoàn thành là thao tác chính, không rollback vì lỗi phần dẫn xuất.
	touchRelatedContacts(ctx, activity.RelatedContactIDs, completedAt, s.contactService.TouchLastContact)
	return updated, nil
}

// touchRelatedContacts đẩy lastContactDate của từng contact liên quan tới completedAt.
// Lỗi từng contact được log riêng và đếm, không chặn các contact còn lại.
func touchRelatedContacts(ctx context.Context, contactIDs []primitive.ObjectID, completedAt int64, touch func(context.Context, primitive.ObjectID, int64) error) int {
	failed := 0
	for _, contactID := range contactIDs {
		if err := touch(ctx, contactID, completedAt); err != nil {
			failed++
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"contact_id":   contactID.Hex(),
				"completed_at": completedAt,
				"error":        err.Error(),
			}).Warn("⚠️ [CRM] Không cập nhật được lastContactDate sau khi hoàn thành activity")
		}
	}
	return failed
}

// CancelActivity chuyển activity sang Cancelled. Activity đã Completed không hủy được.
func (s *OpportunityService) CancelActivity(ctx context.Context, oppID primitive.ObjectID, activityID primitive.ObjectID) (crmmodels.Opportunity, error) {
	var zero crmmodels.Opportunity

	opp, err := s.FindOneById(ctx, oppID)
	if err != nil {
		return zero, err
	}

	idx := findActivityIndex(opp.Activities, activityID)
	if idx < 0 {
		return zero, common.ErrNotFound
	}
	if opp.Activities[idx].Status == crmmodels.ActivityStatusCompleted {
		return zero, common.ErrActivityCompleted
	}
	opp.Activities[idx].Status = crmmodels.ActivityStatusCancelled

	return s.UpdateById(ctx, oppID, &basesvc.UpdateData{
		Set: map[string]interface{}{"activities": opp.Activities},
	})
}

// AddBlocker thêm blocker mới (chưa giải quyết) vào opportunity.
func (s *OpportunityService) AddBlocker(ctx context.Context, oppID primitive.ObjectID, input *crmdto.BlockerAddInput) (crmmodels.Opportunity, error) {
	var zero crmmodels.Opportunity

	opp, err := s.FindOneById(ctx, oppID)
	if err != nil {
		return zero, err
	}

	blocker := crmmodels.Blocker{
		BlockerID:   primitive.NewObjectID(),
		Description: input.Description,
		Completed:   false,
		CreatedAt:   time.Now().UnixMilli(),
	}
	blockers := append(opp.Blockers, blocker)

	return s.UpdateById(ctx, oppID, &basesvc.UpdateData{
		Set: map[string]interface{}{"blockers": blockers},
	})
}

// ResolveBlocker đánh dấu blocker đã giải quyết. Resolve lại lần nữa là no-op.
func (s *OpportunityService) ResolveBlocker(ctx context.Context, oppID primitive.ObjectID, blockerID primitive.ObjectID) (crmmodels.Opportunity, error) {
	var zero crmmodels.Opportunity

	opp, err := s.FindOneById(ctx, oppID)
	if err != nil {
		return zero, err
	}

	found := false
	for i := range opp.Blockers {
		if opp.Blockers[i].BlockerID == blockerID {
			found = true
			if !opp.Blockers[i].Completed {
				opp.Blockers[i].Completed = true
				opp.Blockers[i].ResolvedAt = time.Now().UnixMilli()
			}
			break
		}
	}
	if !found {
		return zero, common.ErrNotFound
	}

	return s.UpdateById(ctx, oppID, &basesvc.UpdateData{
		Set: map[string]interface{}{"blockers": opp.Blockers},
	})
}

func findActivityIndex(activities []crmmodels.Activity, activityID primitive.ObjectID) int {
	for i := range activities {
		if activities[i].ActivityID == activityID {
			return i
		}
	}
	return -1
}
