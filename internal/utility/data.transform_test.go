// Package utility - Test parse tag transform và convert giá trị DTO → Model.
package utility

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTransformTag(t *testing.T) {
	cfg, err := ParseTransformTag("str_objectid,optional,map=AccountID")
	if err != nil {
		t.Fatalf("ParseTransformTag lỗi: %v", err)
	}
	if cfg.Type != "str_objectid" {
		t.Errorf("Type = %q, kỳ vọng str_objectid", cfg.Type)
	}
	if !cfg.Optional {
		t.Error("Optional phải là true")
	}
	if cfg.MapTo != "AccountID" {
		t.Errorf("MapTo = %q, kỳ vọng AccountID", cfg.MapTo)
	}

	cfg, err = ParseTransformTag("str_time,format=2006-01-02")
	if err != nil {
		t.Fatalf("ParseTransformTag lỗi: %v", err)
	}
	if cfg.Format != "2006-01-02" {
		t.Errorf("Format = %q, kỳ vọng 2006-01-02", cfg.Format)
	}

	cfg, err = ParseTransformTag("")
	if err != nil {
		t.Fatalf("ParseTransformTag tag rỗng lỗi: %v", err)
	}
	if cfg.Type != "" {
		t.Errorf("Tag rỗng phải cho Type rỗng, nhận được %q", cfg.Type)
	}
}

func TestTransformFieldValue_StrObjectID(t *testing.T) {
	cfg, _ := ParseTransformTag("str_objectid")
	id := primitive.NewObjectID()

	got, err := TransformFieldValue(id.Hex(), cfg, reflect.TypeOf(primitive.ObjectID{}))
	if err != nil {
		t.Fatalf("TransformFieldValue lỗi: %v", err)
	}
	if got.(primitive.ObjectID) != id {
		t.Errorf("ObjectID = %v, kỳ vọng %v", got, id)
	}

	// Hex không hợp lệ → lỗi
	if _, err := TransformFieldValue("not-a-hex", cfg, reflect.TypeOf(primitive.ObjectID{})); err == nil {
		t.Error("Hex không hợp lệ phải trả về lỗi")
	}

	// Chuỗi rỗng không required → nil, không lỗi
	got, err = TransformFieldValue("", cfg, reflect.TypeOf(primitive.ObjectID{}))
	if err != nil || got != nil {
		t.Errorf("Chuỗi rỗng phải cho (nil, nil), nhận được (%v, %v)", got, err)
	}
}

func TestTransformFieldValue_Required(t *testing.T) {
	cfg, _ := ParseTransformTag("str_objectid,required")
	if _, err := TransformFieldValue("", cfg, reflect.TypeOf(primitive.ObjectID{})); err == nil {
		t.Error("Field required với giá trị rỗng phải trả về lỗi")
	}
	if _, err := TransformFieldValue(nil, cfg, reflect.TypeOf(primitive.ObjectID{})); err == nil {
		t.Error("Field required với giá trị nil phải trả về lỗi")
	}
}

func TestTransformFieldValue_ArrObjectID(t *testing.T) {
	cfg, _ := ParseTransformTag("arr_objectid")
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	got, err := TransformFieldValue([]string{a.Hex(), b.Hex()}, cfg, reflect.TypeOf([]primitive.ObjectID{}))
	if err != nil {
		t.Fatalf("TransformFieldValue lỗi: %v", err)
	}
	ids, ok := got.([]primitive.ObjectID)
	if !ok || len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("Mảng ObjectID = %v, kỳ vọng [%v %v]", got, a, b)
	}

	// Một phần tử hex hỏng → lỗi toàn bộ
	if _, err := TransformFieldValue([]string{a.Hex(), "bad"}, cfg, reflect.TypeOf([]primitive.ObjectID{})); err == nil {
		t.Error("Phần tử hex không hợp lệ phải làm cả mảng lỗi")
	}

	// []interface{} (từ JSON decode) cũng phải convert được
	got, err = TransformFieldValue([]interface{}{a.Hex()}, cfg, reflect.TypeOf([]primitive.ObjectID{}))
	if err != nil {
		t.Fatalf("TransformFieldValue với []interface{} lỗi: %v", err)
	}
	if ids := got.([]primitive.ObjectID); len(ids) != 1 || ids[0] != a {
		t.Errorf("Mảng từ []interface{} = %v, kỳ vọng [%v]", got, a)
	}
}

func TestTransformFieldValue_StrTime(t *testing.T) {
	cfg, _ := ParseTransformTag("str_time,format=2006-01-02")
	got, err := TransformFieldValue("2026-08-24", cfg, reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("TransformFieldValue lỗi: %v", err)
	}
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got.(int64) != want {
		t.Errorf("Timestamp = %d, kỳ vọng %d", got, want)
	}
}

func TestTransformFieldValue_KhongCoType(t *testing.T) {
	cfg, _ := ParseTransformTag("")
	got, err := TransformFieldValue("giữ nguyên", cfg, reflect.TypeOf(""))
	if err != nil {
		t.Fatalf("TransformFieldValue lỗi: %v", err)
	}
	if got != "giữ nguyên" {
		t.Errorf("Không có type phải trả về giá trị gốc, nhận được %v", got)
	}
}
