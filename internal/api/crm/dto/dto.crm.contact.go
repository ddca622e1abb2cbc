package crmdto

// ContactCreateInput là input để tạo contact
type ContactCreateInput struct {
	AccountID  string   `json:"accountId" validate:"required" transform:"str_objectid,required"`
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string   `json:"phone,omitempty"`
	JobTitle   string   `json:"jobTitle,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	ProductIDs []string `json:"productIds,omitempty" transform:"arr_objectid,optional"`
}

// ContactUpdateInput là input để cập nhật contact (partial).
// ProductIDs chỉ có tác dụng qua endpoint sync; update thường bỏ qua mảng gương.
type ContactUpdateInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// LastContactDate (unix milli): chỉ được chấp nhận khi lớn hơn giá trị hiện có
	LastContactDate int64 `json:"lastContactDate,omitempty"`
}

// ContactSyncUpdateInput là input cho PUT /contacts/:id/sync.
// PreviousProductIDs là snapshot mảng trước khi sửa, do client giữ, dùng để tính set-diff.
type ContactSyncUpdateInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Notes    string `json:"notes,omitempty"`

	LastContactDate int64 `json:"lastContactDate,omitempty"`

	ProductIDs         []string `json:"productIds,omitempty"`
	PreviousProductIDs []string `json:"previousProductIds,omitempty"`
}
