// Package basehdl - Test transform DTO → Model qua struct tag.
package basehdl

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type transformTestModel struct {
	Name      string
	AccountID primitive.ObjectID
	TagIDs    []primitive.ObjectID
	Notes     string
	Count     int
}

type transformTestCreateInput struct {
	Name      string   `json:"name"`
	AccountID string   `json:"accountId" transform:"str_objectid,map=AccountID"`
	TagIDs    []string `json:"tagIds" transform:"arr_objectid,optional"`
	Extra     string   `json:"extra"` // không có trong Model, phải được bỏ qua
}

type transformTestUpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Notes *string `json:"notes,omitempty"`
	Count *int    `json:"count,omitempty"`
}

func newTransformTestHandler() *BaseHandler[transformTestModel, transformTestCreateInput, transformTestUpdateInput] {
	return &BaseHandler[transformTestModel, transformTestCreateInput, transformTestUpdateInput]{}
}

func TestTransformCreateInputToModel_TagTransform(t *testing.T) {
	h := newTransformTestHandler()
	accountID := primitive.NewObjectID()
	tagID := primitive.NewObjectID()

	input := &transformTestCreateInput{
		Name:      "Acme",
		AccountID: accountID.Hex(),
		TagIDs:    []string{tagID.Hex()},
		Extra:     "bị bỏ qua",
	}

	model, err := h.TransformCreateInputToModel(input)
	if err != nil {
		t.Fatalf("TransformCreateInputToModel lỗi: %v", err)
	}
	if model.Name != "Acme" {
		t.Errorf("Name = %q, kỳ vọng Acme", model.Name)
	}
	if model.AccountID != accountID {
		t.Errorf("AccountID = %v, kỳ vọng %v (convert qua tag str_objectid)", model.AccountID, accountID)
	}
	if len(model.TagIDs) != 1 || model.TagIDs[0] != tagID {
		t.Errorf("TagIDs = %v, kỳ vọng [%v]", model.TagIDs, tagID)
	}
}

func TestTransformCreateInputToModel_HexHongTraVeLoi(t *testing.T) {
	h := newTransformTestHandler()
	input := &transformTestCreateInput{Name: "X", AccountID: "not-hex"}
	if _, err := h.TransformCreateInputToModel(input); err == nil {
		t.Error("Hex không hợp lệ trong field transform phải trả về lỗi")
	}
}

func TestTransformUpdateInputToModel_FieldPointer(t *testing.T) {
	h := newTransformTestHandler()
	name := "Tên mới"
	count := 5

	// Chỉ gửi name và count; notes nil phải giữ zero value (partial update)
	input := &transformTestUpdateInput{Name: &name, Count: &count}

	model, err := h.TransformUpdateInputToModel(input)
	if err != nil {
		t.Fatalf("TransformUpdateInputToModel lỗi: %v", err)
	}
	if model.Name != "Tên mới" {
		t.Errorf("Field pointer non-nil phải được deref và gán, Name = %q", model.Name)
	}
	if model.Count != 5 {
		t.Errorf("Count = %d, kỳ vọng 5", model.Count)
	}
	if model.Notes != "" {
		t.Errorf("Field pointer nil phải bị bỏ qua, Notes = %q", model.Notes)
	}
}
