package utility

import (
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// P2Int64 chuyển đổi interface (chuỗi hoặc json.Number) thành int64.
// Trả về 0 nếu giá trị không hợp lệ.
func P2Int64(input interface{}) int64 {
	switch v := input.(type) {
	case string:
		result, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return result
	case json.Number:
		result, err := v.Int64()
		if err != nil {
			return 0
		}
		return result
	default:
		return 0
	}
}

// P2Float64 chuyển đổi interface (chuỗi hoặc json.Number) thành float64.
// Trả về 0 nếu giá trị không hợp lệ.
func P2Float64(input interface{}) float64 {
	switch v := input.(type) {
	case string:
		result, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return result
	case json.Number:
		result, err := v.Float64()
		if err != nil {
			return 0
		}
		return result
	default:
		return 0
	}
}

// String2ObjectID chuyển đổi chuỗi thành ObjectID
// @params - chuỗi cần chuyển đổi
// @returns - ObjectID
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String chuyển đổi ObjectID thành chuỗi
// @params - ObjectID cần chuyển đổi
// @returns - chuỗi ObjectID
func ObjectID2String(id primitive.ObjectID) string {
	stringObjectID := id.Hex()
	return stringObjectID
}

// StringArray2ObjectIDArray chuyển đổi mảng chuỗi thành mảng ObjectID
// @params - mảng chuỗi cần chuyển đổi
// @returns - mảng ObjectID
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}
