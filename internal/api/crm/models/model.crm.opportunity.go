package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các stage của Opportunity. Discovery là stage sớm nhất.
const (
	StageDiscovery     = "Discovery"
	StageQualification = "Qualification"
	StageProposal      = "Proposal"
	StageNegotiation   = "Negotiation"
	StageClosedWon     = "Closed-Won"
	StageClosedLost    = "Closed-Lost"
)

// Các mức priority của Opportunity, xếp hạng Critical > High > Medium > Low.
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
)

// Các trạng thái của Activity.
const (
	ActivityStatusScheduled = "Scheduled"
	ActivityStatusCompleted = "Completed"
	ActivityStatusCancelled = "Cancelled"
)

// Các loại Activity.
const (
	ActivityTypeMeeting = "Meeting"
	ActivityTypeCall    = "Call"
	ActivityTypeEmail   = "Email"
	ActivityTypeDemo    = "Demo"
	ActivityTypeOther   = "Other"
)

// Activity là hoạt động nhúng trong Opportunity (không phải collection riêng).
// Khi Status = Completed thì activity bất biến, chỉ CompletedAt được set đúng một lần.
type Activity struct {
	ActivityID        primitive.ObjectID   `json:"activityId" bson:"activityId"`
	Type              string               `json:"type" bson:"type"`
	Status            string               `json:"status" bson:"status"`
	DateTime          int64                `json:"dateTime" bson:"dateTime"` // unix milli
	RelatedContactIDs []primitive.ObjectID `json:"relatedContactIds,omitempty" bson:"relatedContactIds,omitempty"`
	AssignedTo        primitive.ObjectID   `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Notes             string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletedAt       int64                `json:"completedAt,omitempty" bson:"completedAt,omitempty"` // unix milli, set một lần khi hoàn thành
}

// Blocker là vướng mắc nhúng trong Opportunity.
type Blocker struct {
	BlockerID   primitive.ObjectID `json:"blockerId" bson:"blockerId"`
	Description string             `json:"description" bson:"description"`
	Completed   bool               `json:"completed" bson:"completed"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	ResolvedAt  int64              `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}

// Opportunity là cơ hội kinh doanh thuộc một Account, nhúng danh sách Activity và Blocker.
// Region copy từ Account lúc tạo để engine tính metrics không phải join.
type Opportunity struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AccountID          primitive.ObjectID `json:"accountId" bson:"accountId" index:"single"`
	Title              string             `json:"title" bson:"title" index:"text"`
	Stage              string             `json:"stage" bson:"stage" index:"single"`
	Priority           string             `json:"priority,omitempty" bson:"priority,omitempty"`
	Region             string             `json:"region,omitempty" bson:"region,omitempty"`
	EstimatedDealValue float64            `json:"estimatedDealValue,omitempty" bson:"estimatedDealValue,omitempty"`
	ExpectedCloseDate  int64              `json:"expectedCloseDate,omitempty" bson:"expectedCloseDate,omitempty"` // unix milli
	OwnerID            primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty" index:"single"`
	Notes              string             `json:"notes,omitempty" bson:"notes,omitempty"`

	// Tên/nhãn các sản phẩm gắn với cơ hội, dùng cho nhóm theo product trong pipeline metrics
	Products []string `json:"products,omitempty" bson:"products,omitempty"`

	Activities []Activity `json:"activities" bson:"activities"`
	Blockers   []Blocker  `json:"blockers" bson:"blockers"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
