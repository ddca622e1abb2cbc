package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình cho việc validate filter
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng CRUD cơ bản.
// Struct này sử dụng Generic Type để có thể tái sử dụng cho nhiều loại model khác nhau.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service xử lý logic nghiệp vụ với MongoDB
	filterOptions FilterOptions               // Cấu hình validate filter
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
			},
			MaxFields: 10,
		},
	}
}

// ValidateInput thực hiện validate chi tiết dữ liệu đầu vào.
// Validate với validator (struct tag validate) và các tag bổ sung (maxLength, min, max).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	// Validate với validator từ global
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Kiểm tra các trường đặc biệt
	val := reflect.ValueOf(input)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	// Chỉ xử lý nếu input là struct
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Kiểm tra các trường string
		if field.Kind() == reflect.String {
			// Kiểm tra độ dài tối đa (nếu có tag maxLength)
			if maxTag := fieldType.Tag.Get("maxLength"); maxTag != "" {
				maxLen, err := strconv.Atoi(maxTag)
				if err == nil && len(field.String()) > maxLen {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s vượt quá độ dài cho phép (%d ký tự)", fieldType.Name, maxLen),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}

		// Kiểm tra các trường số
		if field.Kind() == reflect.Int || field.Kind() == reflect.Int64 {
			// Kiểm tra giá trị tối thiểu (nếu có tag min)
			if minTag := fieldType.Tag.Get("min"); minTag != "" {
				min, err := strconv.ParseInt(minTag, 10, 64)
				if err == nil && field.Int() < min {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s phải lớn hơn hoặc bằng %d", fieldType.Name, min),
						common.StatusBadRequest,
						nil,
					)
				}
			}

			// Kiểm tra giá trị tối đa (nếu có tag max)
			if maxTag := fieldType.Tag.Get("max"); maxTag != "" {
				max, err := strconv.ParseInt(maxTag, 10, 64)
				if err == nil && field.Int() > max {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s phải nhỏ hơn hoặc bằng %d", fieldType.Name, max),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// ParseRequestBody parse dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
//
// Parameters:
// - c: Fiber context
// - input: Con trỏ tới struct sẽ chứa dữ liệu được parse
//
// Returns:
// - error: Lỗi nếu có trong quá trình parse
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ParseRequestQuery parse và validate dữ liệu từ query string.
// Query string phải được encode dưới dạng JSON (param "query").
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestQuery(c fiber.Ctx, input interface{}) error {
	query := c.Query("query", "")

	reader := bytes.NewReader([]byte(query))
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ParseRequestParams parse và validate các tham số từ URI.
// Sử dụng Fiber's URI binding để parse các tham số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ProcessFilter xử lý và validate filter từ query string (param "filter", JSON).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Normalize filter: chuyển đổi các string ObjectId thành ObjectID
	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// normalizeFilter chuyển đổi các string có format ObjectId thành ObjectID trong filter.
// Hỗ trợ các trường có tên kết thúc bằng "Id" hoặc "ID".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}

	normalized := make(map[string]interface{})
	for field, value := range filter {
		// Kiểm tra nếu field name kết thúc bằng "Id" hoặc "ID" (case-insensitive)
		fieldLower := strings.ToLower(field)
		isIDField := strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2

		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}

	return normalized
}

// normalizeFilterValue chuyển đổi giá trị trong filter, hỗ trợ nested structures
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	if value == nil {
		return value
	}

	// Hỗ trợ MongoDB Extended JSON format: {"$oid": "..."}
	if mapValue, ok := value.(map[string]interface{}); ok {
		if oidValue, hasOid := mapValue["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok {
				if primitive.IsValidObjectID(oidStr) {
					objID, err := primitive.ObjectIDFromHex(oidStr)
					if err == nil {
						return objID
					}
				}
			}
			return value
		}
	}

	// Nếu là string và field là ID field, thử chuyển đổi thành ObjectID
	if strValue, ok := value.(string); ok && isIDField {
		if primitive.IsValidObjectID(strValue) {
			objID, err := primitive.ObjectIDFromHex(strValue)
			if err == nil {
				return objID
			}
		}
		return strValue
	}

	// Nếu là mảng, xử lý từng phần tử
	if arrValue, ok := value.([]interface{}); ok {
		normalizedArr := make([]interface{}, len(arrValue))
		for i, item := range arrValue {
			normalizedArr[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalizedArr
	}

	// Nếu là map (cho các operator như $in, $nin, $eq, etc.), xử lý đệ quy
	if mapValue, ok := value.(map[string]interface{}); ok {
		normalizedMap := make(map[string]interface{})
		for key, val := range mapValue {
			// Đặc biệt xử lý $in và $nin - các giá trị trong mảng cần được chuyển đổi
			if (key == "$in" || key == "$nin") && isIDField {
				if arrVal, ok := val.([]interface{}); ok {
					normalizedArr := make([]interface{}, len(arrVal))
					for i, item := range arrVal {
						if strItem, ok := item.(string); ok && primitive.IsValidObjectID(strItem) {
							objID, err := primitive.ObjectIDFromHex(strItem)
							if err == nil {
								normalizedArr[i] = objID
							} else {
								normalizedArr[i] = item
							}
						} else {
							normalizedArr[i] = item
						}
					}
					normalizedMap[key] = normalizedArr
				} else {
					normalizedMap[key] = val
				}
			} else {
				normalizedMap[key] = h.normalizeFilterValue(val, isIDField)
			}
		}
		return normalizedMap
	}

	return value
}

// validateFilter kiểm tra tính hợp lệ của filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields
	allowedOperators := h.filterOptions.AllowedOperators

	maxFields := h.filterOptions.MaxFields
	if maxFields == 0 {
		maxFields = 10
	}

	// Kiểm tra số lượng field
	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter vượt quá số lượng trường cho phép. Tối đa %d trường, hiện tại có %d trường. Vui lòng giảm số lượng trường trong filter.", maxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	// Kiểm tra từng field và operator
	for field, value := range filter {
		if utility.Contains(deniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật. Vui lòng sử dụng các trường khác.", field),
				common.StatusBadRequest,
				nil,
			)
		}

		// Kiểm tra operator nếu value là map
		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(allowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng. Các toán tử được phép: %v", op, allowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// processMongoOptions xử lý options từ query string và chuyển đổi sang MongoDB options
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị options nhận được: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	// Parse sort với thứ tự key được giữ nguyên từ JSON string gốc
	// (map[string]interface{} không giữ thứ tự nên phải parse lại bằng Decoder.Token())
	parseSortWithOrder := func(optionsJSON string) bson.D {
		sortBson := bson.D{}

		var tempOptions map[string]json.RawMessage
		if err := json.Unmarshal([]byte(optionsJSON), &tempOptions); err != nil {
			return sortBson
		}

		sortRaw, ok := tempOptions["sort"]
		if !ok {
			return sortBson
		}

		decoder := json.NewDecoder(bytes.NewReader(sortRaw))
		decoder.UseNumber()

		token, err := decoder.Token()
		if err != nil || token != json.Delim('{') {
			return sortBson
		}

		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				break
			}
			field, ok := keyToken.(string)
			if !ok {
				continue
			}

			valueToken, err := decoder.Token()
			if err != nil {
				break
			}

			var sortValue int
			switch v := valueToken.(type) {
			case json.Number:
				intVal, err := v.Int64()
				if err != nil {
					floatVal, err := v.Float64()
					if err != nil {
						continue
					}
					intVal = int64(floatVal)
				}
				sortValue = int(intVal)
			case float64:
				sortValue = int(v)
			default:
				continue
			}

			// Chỉ chấp nhận 1 hoặc -1
			if sortValue != 1 && sortValue != -1 {
				continue
			}

			sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
		}

		return sortBson
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if _, ok := rawOptions["sort"].(map[string]interface{}); ok {
			opts.SetSort(parseSortWithOrder(optionsStr))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if _, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(parseSortWithOrder(optionsStr))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// validateMongoOptions kiểm tra tính hợp lệ của các options
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields

	// Danh sách các options được phép
	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}

	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Các options được phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	// Validate projection
	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	// Validate sort
	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong sort vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Giá trị sort cho trường '%s' phải là 1 (tăng dần) hoặc -1 (giảm dần), giá trị hiện tại: %v", field, value),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	// Validate limit
	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị limit phải lớn hơn 0",
				common.StatusBadRequest,
				nil,
			)
		}
		if limit > 1000 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị limit không được vượt quá 1000 để đảm bảo hiệu năng hệ thống",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	// Validate skip
	if skip, ok := options["skip"].(float64); ok {
		if skip < 0 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				"Giá trị skip không được âm",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	return nil
}

// ParsePagination xử lý việc parse thông tin phân trang từ request.
// Hỗ trợ các tham số:
// - page: Số trang (mặc định: 1)
// - limit: Số lượng item trên một trang (mặc định: 10)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	return page, limit
}

// GetIDFromContext lấy ID từ URI params của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// TransformCreateInputToModel transform CreateInput (DTO) sang Model (T).
// Sử dụng struct tag `transform` để tự động convert các field (ví dụ: string → ObjectID).
// Hỗ trợ map field từ DTO sang Model với tên khác nhau thông qua option `map=<field_name>`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	return h.transformInputToModel(input)
}

// TransformUpdateInputToModel transform UpdateInput (DTO) sang Model (T).
// Cùng cơ chế với TransformCreateInputToModel (struct tag `transform`).
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	return h.transformInputToModel(input)
}

// transformInputToModel transform DTO sang Model qua reflection + struct tag `transform`
func (h *BaseHandler[T, CreateInput, UpdateInput]) transformInputToModel(input interface{}) (*T, error) {
	model := new(T)

	inputVal := reflect.ValueOf(input)
	if inputVal.Kind() == reflect.Ptr {
		inputVal = inputVal.Elem()
	}
	if inputVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input phải là struct hoặc pointer đến struct")
	}

	modelVal := reflect.ValueOf(model).Elem()
	if modelVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("Model phải là struct")
	}

	inputType := inputVal.Type()
	modelType := modelVal.Type()

	// Duyệt qua tất cả các field trong DTO
	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)

		if !inputField.CanInterface() {
			continue
		}

		fieldValue := inputField.Interface()

		transformTag := inputFieldType.Tag.Get("transform")
		if transformTag != "" {
			transformConfig, err := utility.ParseTransformTag(transformTag)
			if err != nil {
				return nil, fmt.Errorf("lỗi parse transform tag cho field %s: %w", inputFieldType.Name, err)
			}

			// Xác định field target trong Model
			targetFieldName := inputFieldType.Name
			if transformConfig.MapTo != "" {
				targetFieldName = transformConfig.MapTo
			}

			modelField, found := modelType.FieldByName(targetFieldName)
			if !found {
				if transformConfig.Optional {
					continue
				}
				return nil, fmt.Errorf("không tìm thấy field '%s' trong Model (map từ field '%s' trong DTO)", targetFieldName, inputFieldType.Name)
			}

			transformedValue, err := utility.TransformFieldValue(fieldValue, transformConfig, modelField.Type)
			if err != nil {
				if transformConfig.Optional {
					continue
				}
				return nil, fmt.Errorf("lỗi transform field '%s' sang '%s': %w", inputFieldType.Name, targetFieldName, err)
			}

			modelFieldVal := modelVal.FieldByName(targetFieldName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				return nil, fmt.Errorf("không thể set giá trị vào field '%s' trong Model", targetFieldName)
			}

			if transformedValue != nil {
				transformedVal := reflect.ValueOf(transformedValue)
				if transformedVal.Type().AssignableTo(modelFieldVal.Type()) {
					modelFieldVal.Set(transformedVal)
				} else if transformedVal.Type().ConvertibleTo(modelFieldVal.Type()) {
					modelFieldVal.Set(transformedVal.Convert(modelFieldVal.Type()))
				} else {
					return nil, fmt.Errorf("không thể convert giá trị từ type %v sang type %v cho field '%s'", transformedVal.Type(), modelFieldVal.Type(), targetFieldName)
				}
			}
		} else {
			// Không có transform tag → copy trực tiếp nếu field cùng tên và type tương thích
			targetFieldName := inputFieldType.Name
			if _, found := modelType.FieldByName(targetFieldName); !found {
				continue
			}

			modelFieldVal := modelVal.FieldByName(targetFieldName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				continue
			}

			inputValReflect := reflect.ValueOf(fieldValue)

			// Field pointer trong DTO (partial update): nil → bỏ qua, non-nil → lấy giá trị trỏ tới
			if inputValReflect.Kind() == reflect.Ptr && modelFieldVal.Kind() != reflect.Ptr {
				if inputValReflect.IsNil() {
					continue
				}
				inputValReflect = inputValReflect.Elem()
			}

			if inputValReflect.Type().AssignableTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect)
			} else if inputValReflect.Type().ConvertibleTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect.Convert(modelFieldVal.Type()))
			}
			// Nếu không tương thích → bỏ qua (có thể cần transform tag)
		}
	}

	return model, nil
}

// getCreateInputBSONKeySet trả về tập bson key (của Model) tương ứng với các field CreateInput khai báo.
// Dùng trong Upsert: chỉ những key này được đưa vào $set, kể cả giá trị 0/false.
// Trả về nil nếu không suy ra được (caller fallback sang non-zero filter).
func (h *BaseHandler[T, CreateInput, UpdateInput]) getCreateInputBSONKeySet() map[string]bool {
	var input CreateInput
	var model T

	inputType := reflect.TypeOf(input)
	modelType := reflect.TypeOf(model)
	if inputType == nil || modelType == nil {
		return nil
	}
	if inputType.Kind() == reflect.Ptr {
		inputType = inputType.Elem()
	}
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if inputType.Kind() != reflect.Struct || modelType.Kind() != reflect.Struct {
		return nil
	}

	keySet := make(map[string]bool)
	for i := 0; i < inputType.NumField(); i++ {
		inputField := inputType.Field(i)

		// Xác định field target trong Model (tôn trọng map= trong transform tag)
		targetFieldName := inputField.Name
		if transformTag := inputField.Tag.Get("transform"); transformTag != "" {
			if cfg, err := utility.ParseTransformTag(transformTag); err == nil && cfg.MapTo != "" {
				targetFieldName = cfg.MapTo
			}
		}

		modelField, found := modelType.FieldByName(targetFieldName)
		if !found {
			continue
		}

		// Key trong $set là bson tag của Model field (ToMap marshal theo bson tag)
		bsonKey := strings.Split(modelField.Tag.Get("bson"), ",")[0]
		if bsonKey == "" || bsonKey == "-" {
			bsonKey = strings.ToLower(modelField.Name)
		}
		keySet[bsonKey] = true
	}

	if len(keySet) == 0 {
		return nil
	}
	return keySet
}
