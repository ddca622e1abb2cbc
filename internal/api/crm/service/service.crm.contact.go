package crmsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

// ContactService là cấu trúc chứa các phương thức liên quan đến contact
type ContactService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Contact]
}

// NewContactService tạo mới ContactService
func NewContactService() (*ContactService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Contacts)
	if !exist {
		return nil, fmt.Errorf("failed to get contacts collection: %v", common.ErrNotFound)
	}
	return &ContactService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Contact](coll),
	}, nil
}

// TouchLastContact đẩy lastContactDate của contact tiến tới dateMs (unix milli).
// Giá trị mới nhỏ hơn hoặc bằng giá trị hiện có thì bỏ qua, không phải lỗi —
// field này chỉ tiến về phía trước theo thời gian.
func (s *ContactService) TouchLastContact(ctx context.Context, contactID primitive.ObjectID, dateMs int64) error {
	if dateMs <= 0 {
		return nil
	}
	filter := bson.M{
		"_id": contactID,
		"$or": []bson.M{
			{"lastContactDate": bson.M{"$exists": false}},
			{"lastContactDate": bson.M{"$lt": dateMs}},
		},
	}
	update := bson.M{"$set": bson.M{
		"lastContactDate": dateMs,
		"updatedAt":       time.Now().UnixMilli(),
	}}
	// MatchedCount = 0 nghĩa là contact không tồn tại hoặc giá trị hiện có đã mới hơn — cả hai đều bỏ qua
	_, err := s.Collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
