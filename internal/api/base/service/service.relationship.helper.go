package basesvc

import (
	"context"
	"fmt"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipCheck dinh nghia mot quan he can kiem tra
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists kiem tra co record nao trong collection khac dang tro toi record nay khong
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Khong tim thay collection '%s' de kiem tra quan he", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		filter := bson.M{check.FieldName: recordID}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Khong the xoa record vi co %d record trong collection '%s' dang tham chieu toi record nay", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// CheckRelationshipExistsWithFilter kiem tra quan he voi filter tuy chinh
func CheckRelationshipExistsWithFilter(ctx context.Context, filter bson.M, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Khong tim thay collection '%s' de kiem tra quan he", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Khong the xoa record vi co %d record trong collection '%s' dang tham chieu toi record nay", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount tra ve so luong record dang tham chieu toi record nay
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Khong tim thay collection '%s'", collectionName), common.StatusInternalServerError, nil)
	}
	filter := bson.M{fieldName: recordID}
	return collection.CountDocuments(ctx, filter)
}

// ValidateBeforeDeleteAccount kiem tra cac quan he cua Account truoc khi xoa
func ValidateBeforeDeleteAccount(ctx context.Context, accountID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.Contacts, FieldName: "accountId", ErrorMessage: "Khong the xoa account vi co %d contact truc thuoc. Vui long xoa hoac di chuyen cac contact truoc."},
		{CollectionName: global.MongoDB_ColNames.Products, FieldName: "accountId", ErrorMessage: "Khong the xoa account vi co %d product truc thuoc. Vui long xoa hoac di chuyen cac product truoc."},
		{CollectionName: global.MongoDB_ColNames.Opportunities, FieldName: "accountId", ErrorMessage: "Khong the xoa account vi co %d opportunity truc thuoc. Vui long xoa hoac di chuyen cac opportunity truoc."},
	}
	return CheckRelationshipExists(ctx, accountID, checks)
}

// ValidateBeforeDeleteUser kiem tra cac quan he cua User truoc khi xoa
func ValidateBeforeDeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.Accounts, FieldName: "ownerId", ErrorMessage: "Khong the xoa user vi dang la owner cua %d account. Vui long chuyen owner truoc."},
		{CollectionName: global.MongoDB_ColNames.Opportunities, FieldName: "ownerId", ErrorMessage: "Khong the xoa user vi dang la owner cua %d opportunity. Vui long chuyen owner truoc."},
		{CollectionName: global.MongoDB_ColNames.Opportunities, FieldName: "activities.assignedTo", ErrorMessage: "Khong the xoa user vi dang duoc gan cho %d opportunity co activity. Vui long gan lai truoc.", Optional: true},
	}
	return CheckRelationshipExists(ctx, userID, checks)
}
