// Package crmsvc - Test phép set-diff và fan-out của bộ đồng bộ mảng gương.
package crmsvc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mirrorCall struct {
	id     primitive.ObjectID
	update bson.M
}

// fakeMirrorStore thay *mongo.Collection phía gương: tiêm lỗi theo id,
// giả lập counterpart đã xóa, và ghi lại mọi lệnh update nhận được.
type fakeMirrorStore struct {
	name    string
	failMsg map[primitive.ObjectID]string
	missing map[primitive.ObjectID]bool
	calls   []mirrorCall
}

func (f *fakeMirrorStore) Name() string { return f.name }

func (f *fakeMirrorStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	id := filter.(bson.M)["_id"].(primitive.ObjectID)
	if msg, ok := f.failMsg[id]; ok {
		return nil, errors.New(msg)
	}
	f.calls = append(f.calls, mirrorCall{id: id, update: update.(bson.M)})
	if f.missing[id] {
		return &mongo.UpdateResult{}, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeMirrorStore) callFor(id primitive.ObjectID) (mirrorCall, bool) {
	for _, c := range f.calls {
		if c.id == id {
			return c, true
		}
	}
	return mirrorCall{}, false
}

func TestDiffIDSets(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	tests := []struct {
		name       string
		newIDs     []primitive.ObjectID
		prevIDs    []primitive.ObjectID
		wantAdd    []primitive.ObjectID
		wantRemove []primitive.ObjectID
	}{
		{
			name:       "thêm và gỡ",
			newIDs:     []primitive.ObjectID{a, b},
			prevIDs:    []primitive.ObjectID{b, c},
			wantAdd:    []primitive.ObjectID{a},
			wantRemove: []primitive.ObjectID{c},
		},
		{
			name:       "không đổi thì diff rỗng",
			newIDs:     []primitive.ObjectID{a, b},
			prevIDs:    []primitive.ObjectID{b, a},
			wantAdd:    nil,
			wantRemove: nil,
		},
		{
			name:       "new rỗng gỡ hết",
			newIDs:     nil,
			prevIDs:    []primitive.ObjectID{a, b},
			wantAdd:    nil,
			wantRemove: []primitive.ObjectID{a, b},
		},
		{
			name:       "previous rỗng thêm hết",
			newIDs:     []primitive.ObjectID{a},
			prevIDs:    nil,
			wantAdd:    []primitive.ObjectID{a},
			wantRemove: nil,
		},
		{
			name:       "id trùng trong new đi qua diff nguyên vẹn ($addToSet hấp thụ)",
			newIDs:     []primitive.ObjectID{a, a},
			prevIDs:    nil,
			wantAdd:    []primitive.ObjectID{a, a},
			wantRemove: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toAdd, toRemove := diffIDSets(tt.newIDs, tt.prevIDs)
			if !sameIDSet(toAdd, tt.wantAdd) {
				t.Errorf("toAdd = %v, kỳ vọng %v", toAdd, tt.wantAdd)
			}
			if !sameIDSet(toRemove, tt.wantRemove) {
				t.Errorf("toRemove = %v, kỳ vọng %v", toRemove, tt.wantRemove)
			}
		})
	}
}

func TestDiffIDSets_Idempotent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	// Chạy diff với new == previous (trạng thái đã hội tụ) phải cho diff rỗng:
	// fan-out lặp lại với cùng đối số không sinh thao tác mới.
	newIDs := []primitive.ObjectID{a, b}
	toAdd, toRemove := diffIDSets(newIDs, newIDs)
	if len(toAdd) != 0 || len(toRemove) != 0 {
		t.Errorf("Diff của trạng thái đã hội tụ phải rỗng, nhận được toAdd=%v toRemove=%v", toAdd, toRemove)
	}
}

func TestSyncReport_HasErrorsVaSummary(t *testing.T) {
	r := &SyncReport{Attempted: 3, Added: 2, Removed: 1}
	if r.HasErrors() {
		t.Error("Report không có lỗi nhưng HasErrors trả về true")
	}

	r.Errors = append(r.Errors, SyncError{Collection: "products", ID: primitive.NewObjectID().Hex(), Message: "write failed"})
	if !r.HasErrors() {
		t.Error("Report có lỗi nhưng HasErrors trả về false")
	}

	want := "attempted=3 added=2 removed=1 errors=1"
	if got := r.Summary(); got != want {
		t.Errorf("Summary = %q, kỳ vọng %q", got, want)
	}
}

func TestSyncMirrorSide_FanOutThemVaGo(t *testing.T) {
	owner := primitive.NewObjectID()
	addA := primitive.NewObjectID()
	addB := primitive.NewObjectID()
	removeC := primitive.NewObjectID()
	store := &fakeMirrorStore{name: "products"}

	report := syncMirrorSide(context.Background(), store, "contactIds", owner,
		[]primitive.ObjectID{addA, addB}, []primitive.ObjectID{removeC})

	if report.Attempted != 3 || report.Added != 2 || report.Removed != 1 {
		t.Fatalf("Report sai: %s", report.Summary())
	}
	if report.HasErrors() {
		t.Fatalf("Không tiêm lỗi nhưng report có lỗi: %v", report.Errors)
	}

	// Ghi phía thêm phải dùng $addToSet (tập hợp, không nhân bản phần tử)
	for _, id := range []primitive.ObjectID{addA, addB} {
		call, ok := store.callFor(id)
		if !ok {
			t.Fatalf("Counterpart %s không nhận được update", id.Hex())
		}
		set, ok := call.update["$addToSet"].(bson.M)
		if !ok {
			t.Fatalf("Update thêm phải dùng $addToSet, nhận được %v", call.update)
		}
		if set["contactIds"] != owner {
			t.Errorf("$addToSet phải thêm owner %s, nhận được %v", owner.Hex(), set["contactIds"])
		}
	}

	// Ghi phía gỡ phải dùng $pull
	call, ok := store.callFor(removeC)
	if !ok {
		t.Fatalf("Counterpart bị gỡ không nhận được update")
	}
	pull, ok := call.update["$pull"].(bson.M)
	if !ok {
		t.Fatalf("Update gỡ phải dùng $pull, nhận được %v", call.update)
	}
	if pull["contactIds"] != owner {
		t.Errorf("$pull phải gỡ owner %s, nhận được %v", owner.Hex(), pull["contactIds"])
	}
}

func TestSyncMirrorSide_TichLuyLoiTungId(t *testing.T) {
	owner := primitive.NewObjectID()
	failing := primitive.NewObjectID()
	healthy := primitive.NewObjectID()
	store := &fakeMirrorStore{
		name:    "products",
		failMsg: map[primitive.ObjectID]string{failing: "write failed"},
	}

	report := syncMirrorSide(context.Background(), store, "contactIds", owner,
		[]primitive.ObjectID{failing, healthy}, nil)

	// Lỗi một id không chặn id còn lại
	if report.Added != 1 {
		t.Errorf("Id lành phải vẫn được ghi, Added = %d", report.Added)
	}
	if _, ok := store.callFor(healthy); !ok {
		t.Error("Vòng lặp phải chạy tiếp sau id lỗi")
	}

	// Lỗi được tích lũy và gọi đúng tên id hỏng
	if !report.HasErrors() || len(report.Errors) != 1 {
		t.Fatalf("Kỳ vọng đúng 1 lỗi tích lũy, nhận được %d", len(report.Errors))
	}
	e := report.Errors[0]
	if e.ID != failing.Hex() {
		t.Errorf("Lỗi phải gọi tên id hỏng %s, nhận được %s", failing.Hex(), e.ID)
	}
	if e.Collection != "products" {
		t.Errorf("Lỗi phải ghi collection phía gương, nhận được %q", e.Collection)
	}
	if !strings.Contains(e.Message, "write failed") {
		t.Errorf("Thông điệp lỗi gốc phải được giữ, nhận được %q", e.Message)
	}
}

func TestSyncMirrorSide_CounterpartDaXoaBoQua(t *testing.T) {
	owner := primitive.NewObjectID()
	gone := primitive.NewObjectID()
	store := &fakeMirrorStore{
		name:    "contacts",
		missing: map[primitive.ObjectID]bool{gone: true},
	}

	report := syncMirrorSide(context.Background(), store, "productIds", owner,
		[]primitive.ObjectID{gone}, nil)

	// Id treo coi như đã nhất quán: không lỗi, không đếm vào Added
	if report.HasErrors() {
		t.Errorf("Counterpart đã xóa không phải lỗi, nhận được %v", report.Errors)
	}
	if report.Added != 0 {
		t.Errorf("Counterpart đã xóa không được đếm vào Added, nhận được %d", report.Added)
	}
	if report.Attempted != 1 {
		t.Errorf("Attempted vẫn phải đếm lượt thử, nhận được %d", report.Attempted)
	}
}

func TestSyncMirrorSide_DonDepKhiXoaOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	prev := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	store := &fakeMirrorStore{name: "products"}

	// Xóa owner: new rỗng nên mọi id đang lưu phải bị gỡ back-reference
	toAdd, toRemove := diffIDSets(nil, prev)
	report := syncMirrorSide(context.Background(), store, "contactIds", owner, toAdd, toRemove)

	if report.Removed != len(prev) {
		t.Fatalf("Phải gỡ owner khỏi cả %d counterpart, nhận được %d", len(prev), report.Removed)
	}
	for _, id := range prev {
		call, ok := store.callFor(id)
		if !ok {
			t.Fatalf("Counterpart %s không được dọn back-reference", id.Hex())
		}
		pull, ok := call.update["$pull"].(bson.M)
		if !ok || pull["contactIds"] != owner {
			t.Errorf("Counterpart %s phải nhận $pull owner, nhận được %v", id.Hex(), call.update)
		}
	}
}

func TestSyncMirrorSide_ChayLaiCungDoiSoIdempotent(t *testing.T) {
	owner := primitive.NewObjectID()
	target := primitive.NewObjectID()

	first := &fakeMirrorStore{name: "products"}
	second := &fakeMirrorStore{name: "products"}
	args := []primitive.ObjectID{target}

	r1 := syncMirrorSide(context.Background(), first, "contactIds", owner, args, nil)
	r2 := syncMirrorSide(context.Background(), second, "contactIds", owner, args, nil)

	// Cùng đối số phải sinh cùng lệnh ghi dạng tập hợp: chạy lại không đổi kết quả
	if r1.Summary() != r2.Summary() {
		t.Errorf("Chạy lại cho report khác: %s so với %s", r1.Summary(), r2.Summary())
	}
	c1, _ := first.callFor(target)
	c2, _ := second.callFor(target)
	if _, ok := c1.update["$addToSet"]; !ok {
		t.Fatal("Ghi thêm phải là $addToSet để chạy lại không nhân bản phần tử")
	}
	if _, ok := c2.update["$addToSet"]; !ok {
		t.Fatal("Lần chạy thứ hai cũng phải ghi $addToSet")
	}
}

func sameIDSet(got, want []primitive.ObjectID) bool {
	if len(got) != len(want) {
		return false
	}
	count := make(map[primitive.ObjectID]int)
	for _, id := range got {
		count[id]++
	}
	for _, id := range want {
		count[id]--
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}
