// Package utility - Test các hàm convert định dạng.
package utility

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestP2Int64(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"chuỗi số hợp lệ", "42", 42},
		{"chuỗi âm", "-7", -7},
		{"chuỗi không phải số", "abc", 0},
		{"json.Number", json.Number("123"), 123},
		{"kiểu không hỗ trợ", 3.14, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := P2Int64(tt.input); got != tt.want {
				t.Errorf("P2Int64(%v) = %d, kỳ vọng %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestP2Float64(t *testing.T) {
	if got := P2Float64("3.5"); got != 3.5 {
		t.Errorf("P2Float64(\"3.5\") = %v, kỳ vọng 3.5", got)
	}
	if got := P2Float64(json.Number("2.25")); got != 2.25 {
		t.Errorf("P2Float64(json.Number) = %v, kỳ vọng 2.25", got)
	}
	if got := P2Float64("x"); got != 0 {
		t.Errorf("P2Float64 với chuỗi hỏng phải trả về 0, nhận được %v", got)
	}
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	if got := String2ObjectID(id.Hex()); got != id {
		t.Errorf("String2ObjectID = %v, kỳ vọng %v", got, id)
	}
	if got := String2ObjectID("không hợp lệ"); got != primitive.NilObjectID {
		t.Errorf("Chuỗi hỏng phải cho NilObjectID, nhận được %v", got)
	}
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	got := StringArray2ObjectIDArray([]string{a.Hex(), b.Hex()})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Kết quả = %v, kỳ vọng [%v %v]", got, a, b)
	}

	if got := StringArray2ObjectIDArray(nil); got != nil {
		t.Errorf("Mảng nil phải cho nil, nhận được %v", got)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Error("Contains phải tìm thấy phần tử có mặt")
	}
	if Contains([]int{1, 2}, 3) {
		t.Error("Contains không được tìm thấy phần tử vắng mặt")
	}
}
