package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact là người liên hệ thuộc đúng một Account.
// ProductIDs là phía "thuận" của quan hệ nhiều-nhiều Contact↔Product;
// phía gương là Product.ContactIDs, hai mảng được giữ nhất quán bởi CrmSyncService.
type Contact struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AccountID primitive.ObjectID `json:"accountId" bson:"accountId" index:"single"`
	Name      string             `json:"name" bson:"name" index:"text"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	JobTitle  string             `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`

	// Mảng gương, chỉ ghi qua các đường sync
	ProductIDs []primitive.ObjectID `json:"productIds" bson:"productIds"`

	// LastContactDate (unix milli) chỉ tiến về phía trước theo thời gian:
	// ghi giá trị nhỏ hơn giá trị hiện có sẽ bị bỏ qua, không phải lỗi.
	LastContactDate int64 `json:"lastContactDate,omitempty" bson:"lastContactDate,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
