package crmdto

// OpportunityCreateInput là input để tạo opportunity
type OpportunityCreateInput struct {
	AccountID          string   `json:"accountId" validate:"required" transform:"str_objectid,required"`
	Title              string   `json:"title" validate:"required"`
	Stage              string   `json:"stage" validate:"required,oneof=Discovery Proposal Negotiation Closed-Won Closed-Lost"`
	Priority           string   `json:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	Region             string   `json:"region,omitempty"`
	EstimatedDealValue float64  `json:"estimatedDealValue,omitempty"`
	ExpectedCloseDate  int64    `json:"expectedCloseDate,omitempty"`
	OwnerID            string   `json:"ownerId,omitempty" transform:"str_objectid,optional"`
	Notes              string   `json:"notes,omitempty"`
	Products           []string `json:"products,omitempty"`
}

// OpportunityUpdateInput là input để cập nhật opportunity (partial).
// Activities và Blockers chỉ sửa qua các endpoint chuyên biệt.
type OpportunityUpdateInput struct {
	Title              string   `json:"title,omitempty"`
	Stage              string   `json:"stage,omitempty" validate:"omitempty,oneof=Discovery Proposal Negotiation Closed-Won Closed-Lost"`
	Priority           string   `json:"priority,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	Region             string   `json:"region,omitempty"`
	EstimatedDealValue float64  `json:"estimatedDealValue,omitempty"`
	ExpectedCloseDate  int64    `json:"expectedCloseDate,omitempty"`
	OwnerID            string   `json:"ownerId,omitempty" transform:"str_objectid,optional"`
	Notes              string   `json:"notes,omitempty"`
	Products           []string `json:"products,omitempty"`
}

// ActivityAddInput là input để thêm activity mới (trạng thái khởi tạo luôn là Scheduled)
type ActivityAddInput struct {
	Type              string   `json:"type" validate:"required,oneof=Meeting Call Email Demo Other"`
	DateTime          int64    `json:"dateTime" validate:"required"`
	RelatedContactIDs []string `json:"relatedContactIds,omitempty"`
	AssignedTo        string   `json:"assignedTo,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// ActivityCompleteInput là input để hoàn thành activity.
// CompletedAt rỗng thì dùng thời điểm hiện tại.
type ActivityCompleteInput struct {
	CompletedAt int64  `json:"completedAt,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// BlockerAddInput là input để thêm blocker
type BlockerAddInput struct {
	Description string `json:"description" validate:"required"`
}
