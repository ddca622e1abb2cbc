// Package crmdto chứa các input cho domain CRM.
// Field kiểu string chứa ObjectID dùng transform tag để convert sang primitive.ObjectID;
// update là partial: field zero không được ghi xuống.
package crmdto

// AccountCreateInput là input để tạo account
type AccountCreateInput struct {
	Name     string   `json:"name" validate:"required"`
	Industry string   `json:"industry,omitempty"`
	Region   string   `json:"region,omitempty"`
	Status   string   `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Website  string   `json:"website,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	OwnerID  string   `json:"ownerId,omitempty" transform:"str_objectid,optional"`
}

// AccountUpdateInput là input để cập nhật account (partial)
type AccountUpdateInput struct {
	Name     string   `json:"name,omitempty"`
	Industry string   `json:"industry,omitempty"`
	Region   string   `json:"region,omitempty"`
	Status   string   `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Website  string   `json:"website,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	OwnerID  string   `json:"ownerId,omitempty" transform:"str_objectid,optional"`
}
