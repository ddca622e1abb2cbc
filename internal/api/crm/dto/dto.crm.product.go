package crmdto

// ProductCreateInput là input để tạo product
type ProductCreateInput struct {
	AccountID   string   `json:"accountId" validate:"required" transform:"str_objectid,required"`
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	ContactIDs  []string `json:"contactIds,omitempty" transform:"arr_objectid,optional"`
}

// ProductUpdateInput là input để cập nhật product (partial).
// ContactIDs chỉ có tác dụng qua endpoint sync; update thường bỏ qua mảng gương.
type ProductUpdateInput struct {
	Name        string   `json:"name,omitempty"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ProductSyncUpdateInput là input cho PUT /products/:id/sync.
// PreviousContactIDs là snapshot mảng trước khi sửa, do client giữ, dùng để tính set-diff.
type ProductSyncUpdateInput struct {
	Name        string   `json:"name,omitempty"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	ContactIDs         []string `json:"contactIds,omitempty"`
	PreviousContactIDs []string `json:"previousContactIds,omitempty"`
}
