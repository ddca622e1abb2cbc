// Package crmsvc - Test phần duy trì lastContactDate sau khi hoàn thành activity.
package crmsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTouchRelatedContacts_LoiTungContactKhongChanContactConLai(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	var touched []primitive.ObjectID
	touch := func(ctx context.Context, id primitive.ObjectID, ms int64) error {
		touched = append(touched, id)
		if id == a || id == c {
			return errors.New("update failed")
		}
		return nil
	}

	failed := touchRelatedContacts(context.Background(), []primitive.ObjectID{a, b, c}, 123, touch)

	// Lỗi một contact không được chặn các contact còn lại
	if len(touched) != 3 {
		t.Fatalf("Cả 3 contact phải được thử cập nhật, nhận được %d", len(touched))
	}
	// Và từng lỗi phải được đếm, không chỉ lỗi cuối cùng
	if failed != 2 {
		t.Errorf("Phải đếm đủ 2 lỗi, nhận được %d", failed)
	}
}

func TestTouchRelatedContacts_KhongCoContactLienQuan(t *testing.T) {
	calls := 0
	touch := func(ctx context.Context, id primitive.ObjectID, ms int64) error {
		calls++
		return nil
	}

	failed := touchRelatedContacts(context.Background(), nil, 123, touch)
	if calls != 0 || failed != 0 {
		t.Errorf("Không có contact liên quan thì không gọi cập nhật, calls=%d failed=%d", calls, failed)
	}
}
