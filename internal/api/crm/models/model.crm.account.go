// Package models - các model thuộc domain CRM (accounts, contacts, products, opportunities).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account là đối tác/khách hàng tổ chức, gốc của cây Contact/Product/Opportunity
// (các collection con tham chiếu ngược qua accountId).
type Account struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" index:"text"`
	Industry string             `json:"industry,omitempty" bson:"industry,omitempty" index:"single"`
	Region   string             `json:"region,omitempty" bson:"region,omitempty" index:"single"`
	Status   string             `json:"status,omitempty" bson:"status,omitempty"`
	Tags     []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Website  string             `json:"website,omitempty" bson:"website,omitempty"`
	Notes    string             `json:"notes,omitempty" bson:"notes,omitempty"`
	OwnerID  primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`

	// Chặn xóa account khi còn contact/product/opportunity tham chiếu tới (base service đọc tag này)
	_Relationships []string `bson:"-" json:"-" relationship:"collection:contacts,field:accountId,message:Không thể xóa account vì còn %d contact đang tham chiếu.|collection:products,field:accountId,message:Không thể xóa account vì còn %d product đang tham chiếu.|collection:opportunities,field:accountId,message:Không thể xóa account vì còn %d opportunity đang tham chiếu."`
}
