package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product là sản phẩm/giải pháp thuộc đúng một Account.
// ContactIDs là phía gương của Contact.ProductIDs, chỉ ghi qua các đường sync.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AccountID   primitive.ObjectID `json:"accountId" bson:"accountId" index:"single"`
	Name        string             `json:"name" bson:"name" index:"text"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty" index:"single"`
	Status      string             `json:"status,omitempty" bson:"status,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty"`

	// Mảng gương, chỉ ghi qua các đường sync
	ContactIDs []primitive.ObjectID `json:"contactIds" bson:"contactIds"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
