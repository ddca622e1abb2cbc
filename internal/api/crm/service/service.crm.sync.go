package crmsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/logger"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/utility"
)

// SyncError ghi nhận một lỗi trên một counterpart document trong lượt fan-out.
type SyncError struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Message    string `json:"message"`
}

// SyncReport tổng kết một lượt đồng bộ mảng gương.
// Lỗi fan-out không làm fail thao tác chính — caller đọc Errors để biết phần nào chưa nhất quán.
type SyncReport struct {
	Attempted int         `json:"attempted"`
	Added     int         `json:"added"`
	Removed   int         `json:"removed"`
	Errors    []SyncError `json:"errors"`
}

// HasErrors cho biết lượt đồng bộ có lỗi tích lũy không.
func (r *SyncReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// CrmSyncService giữ bất biến hai chiều giữa Contact.ProductIDs và Product.ContactIDs.
// Không có transaction: ghi document chính trước, fan-out sang phía gương sau;
// lỗi từng counterpart được tích lũy vào SyncReport thay vì propagate ngay,
// và không bao giờ rollback thao tác chính.
type CrmSyncService struct {
	contactService *ContactService
	productService *ProductService
}

// NewCrmSyncService tạo mới CrmSyncService
func NewCrmSyncService() (*CrmSyncService, error) {
	contactService, err := NewContactService()
	if err != nil {
		return nil, err
	}
	productService, err := NewProductService()
	if err != nil {
		return nil, err
	}
	return &CrmSyncService{
		contactService: contactService,
		productService: productService,
	}, nil
}

// diffIDSets tính toAdd = newIds − previousIds và toRemove = previousIds − newIds (set-diff theo id).
func diffIDSets(newIDs, previousIDs []primitive.ObjectID) (toAdd, toRemove []primitive.ObjectID) {
	newSet := make(map[primitive.ObjectID]bool, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = true
	}
	prevSet := make(map[primitive.ObjectID]bool, len(previousIDs))
	for _, id := range previousIDs {
		prevSet[id] = true
	}
	for _, id := range newIDs {
		if !prevSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range previousIDs {
		if !newSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

// mirrorStore là bề mặt tối thiểu bộ đồng bộ cần trên collection phía gương.
// *mongo.Collection thỏa trực tiếp.
type mirrorStore interface {
	Name() string
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// syncMirrorSide fan-out các cập nhật phía gương: thêm ownerID vào mảng mirrorField
// của các counterpart trong toAdd, gỡ khỏi các counterpart trong toRemove.
// Counterpart không tồn tại được bỏ qua (id treo coi như đã nhất quán).
// Ghi bằng $addToSet/$pull nên chạy lại với cùng đối số là idempotent.
func syncMirrorSide(ctx context.Context, counterpart mirrorStore, mirrorField string, ownerID primitive.ObjectID, toAdd, toRemove []primitive.ObjectID) *SyncReport {
	report := &SyncReport{Attempted: len(toAdd) + len(toRemove)}
	nowMs := time.Now().UnixMilli()

	// Tuần tự từng id; một counterpart lỗi không chặn các counterpart còn lại
	for _, id := range toAdd {
		result, err := counterpart.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{
				"$addToSet": bson.M{mirrorField: ownerID},
				"$set":      bson.M{"updatedAt": nowMs},
			})
		if err != nil {
			report.Errors = append(report.Errors, SyncError{
				Collection: counterpart.Name(),
				ID:         id.Hex(),
				Message:    err.Error(),
			})
			continue
		}
		if result.MatchedCount == 0 {
			// Counterpart đã bị xóa: không phải lỗi
			continue
		}
		report.Added++
	}

	for _, id := range toRemove {
		result, err := counterpart.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{
				"$pull": bson.M{mirrorField: ownerID},
				"$set":  bson.M{"updatedAt": nowMs},
			})
		if err != nil {
			report.Errors = append(report.Errors, SyncError{
				Collection: counterpart.Name(),
				ID:         id.Hex(),
				Message:    err.Error(),
			})
			continue
		}
		if result.MatchedCount == 0 {
			continue
		}
		report.Removed++
	}

	if report.HasErrors() {
		// Bất biến hai chiều đang tạm vi phạm; phải quan sát được qua log
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"collection": counterpart.Name(),
			"owner_id":   ownerID.Hex(),
			"attempted":  report.Attempted,
			"errors":     len(report.Errors),
		}).Warn("⚠️ [SYNC] Đồng bộ mảng gương có lỗi tích lũy, dữ liệu có thể chưa nhất quán")
	}
	return report
}

// SyncContactSide đồng bộ phía gương sau khi Contact.ProductIDs đổi:
// ownerID là contact, counterpart là các product trong diff của (newIDs, previousIDs).
func (s *CrmSyncService) SyncContactSide(ctx context.Context, contactID primitive.ObjectID, newIDs, previousIDs []primitive.ObjectID) *SyncReport {
	toAdd, toRemove := diffIDSets(newIDs, previousIDs)
	return syncMirrorSide(ctx, s.productService.Collection(), "contactIds", contactID, toAdd, toRemove)
}

// SyncProductSide đồng bộ phía gương sau khi Product.ContactIDs đổi:
// ownerID là product, counterpart là các contact trong diff của (newIDs, previousIDs).
func (s *CrmSyncService) SyncProductSide(ctx context.Context, productID primitive.ObjectID, newIDs, previousIDs []primitive.ObjectID) *SyncReport {
	toAdd, toRemove := diffIDSets(newIDs, previousIDs)
	return syncMirrorSide(ctx, s.contactService.Collection(), "productIds", productID, toAdd, toRemove)
}

// UpdateContactWithSync ghi cập nhật contact (kể cả productIds) rồi fan-out phía gương.
// Thứ tự bắt buộc: document chính ghi xong trước khi đụng tới phía gương — crash giữa chừng
// vẫn đối soát lại được từ trạng thái hiện tại của document chính.
// Lỗi ghi chính propagate ngay; lỗi fan-out chỉ nằm trong SyncReport.
func (s *CrmSyncService) UpdateContactWithSync(ctx context.Context, contactID primitive.ObjectID, input *crmdto.ContactSyncUpdateInput) (crmmodels.Contact, *SyncReport, error) {
	var zero crmmodels.Contact

	current, err := s.contactService.FindOneById(ctx, contactID)
	if err != nil {
		return zero, nil, err
	}

	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if input.JobTitle != "" {
		set["jobTitle"] = input.JobTitle
	}
	if input.Notes != "" {
		set["notes"] = input.Notes
	}
	// lastContactDate chỉ tiến về phía trước: giá trị không lớn hơn hiện có thì lặng lẽ bỏ qua
	if input.LastContactDate > 0 && input.LastContactDate > current.LastContactDate {
		set["lastContactDate"] = input.LastContactDate
	}

	syncRequested := input.ProductIDs != nil
	var newIDs, previousIDs []primitive.ObjectID
	if syncRequested {
		newIDs = utility.StringArray2ObjectIDArray(input.ProductIDs)
		if input.PreviousProductIDs != nil {
			previousIDs = utility.StringArray2ObjectIDArray(input.PreviousProductIDs)
		} else {
			// Client không gửi snapshot: dùng trạng thái đang lưu làm previous
			previousIDs = current.ProductIDs
		}
		set["productIds"] = newIDs
	}

	updated := current
	if len(set) > 0 {
		updated, err = s.contactService.UpdateById(ctx, contactID, &basesvc.UpdateData{Set: set})
		if err != nil {
			return zero, nil, err
		}
	}

	report := &SyncReport{}
	if syncRequested {
		report = s.SyncContactSide(ctx, contactID, newIDs, previousIDs)
	}
	return updated, report, nil
}

// UpdateProductWithSync ghi cập nhật product (kể cả contactIds) rồi fan-out phía gương.
// Cùng thứ tự và failure semantics với UpdateContactWithSync.
func (s *CrmSyncService) UpdateProductWithSync(ctx context.Context, productID primitive.ObjectID, input *crmdto.ProductSyncUpdateInput) (crmmodels.Product, *SyncReport, error) {
	var zero crmmodels.Product

	current, err := s.productService.FindOneById(ctx, productID)
	if err != nil {
		return zero, nil, err
	}

	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Category != "" {
		set["category"] = input.Category
	}
	if input.Status != "" {
		set["status"] = input.Status
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}

	syncRequested := input.ContactIDs != nil
	var newIDs, previousIDs []primitive.ObjectID
	if syncRequested {
		newIDs = utility.StringArray2ObjectIDArray(input.ContactIDs)
		if input.PreviousContactIDs != nil {
			previousIDs = utility.StringArray2ObjectIDArray(input.PreviousContactIDs)
		} else {
			previousIDs = current.ContactIDs
		}
		set["contactIds"] = newIDs
	}

	updated := current
	if len(set) > 0 {
		updated, err = s.productService.UpdateById(ctx, productID, &basesvc.UpdateData{Set: set})
		if err != nil {
			return zero, nil, err
		}
	}

	report := &SyncReport{}
	if syncRequested {
		report = s.SyncProductSide(ctx, productID, newIDs, previousIDs)
	}
	return updated, report, nil
}

// DeleteContactWithSync gỡ contact khỏi mọi Product.ContactIDs rồi xóa contact.
// Contact đã bị xóa trước đó thì coi là thành công (no-op).
func (s *CrmSyncService) DeleteContactWithSync(ctx context.Context, contactID primitive.ObjectID) (*SyncReport, error) {
	current, err := s.contactService.FindOneById(ctx, contactID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &SyncReport{}, nil
		}
		return nil, err
	}

	// Gỡ back-reference trước để không còn id treo sau khi xóa
	report := s.SyncContactSide(ctx, contactID, nil, current.ProductIDs)

	if err := s.contactService.DeleteById(ctx, contactID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return report, nil
		}
		return report, err
	}
	return report, nil
}

// DeleteProductWithSync gỡ product khỏi mọi Contact.ProductIDs rồi xóa product.
// Product đã bị xóa trước đó thì coi là thành công (no-op).
func (s *CrmSyncService) DeleteProductWithSync(ctx context.Context, productID primitive.ObjectID) (*SyncReport, error) {
	current, err := s.productService.FindOneById(ctx, productID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &SyncReport{}, nil
		}
		return nil, err
	}

	report := s.SyncProductSide(ctx, productID, nil, current.ContactIDs)

	if err := s.productService.DeleteById(ctx, productID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return report, nil
		}
		return report, err
	}
	return report, nil
}

// Summary trả về chuỗi tóm tắt để log hoặc debug.
func (r *SyncReport) Summary() string {
	return fmt.Sprintf("attempted=%d added=%d removed=%d errors=%d", r.Attempted, r.Added, r.Removed, len(r.Errors))
}
