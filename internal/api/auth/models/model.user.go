// Package models - model thuộc domain auth (User).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role hợp lệ của User.
const (
	RoleAdmin = "admin" // Toàn quyền, quản lý users
	RoleUser  = "user"  // Quyền CRM tiêu chuẩn
)

// NotificationPrefs chứa tùy chọn nhận thông báo qua email của người dùng.
type NotificationPrefs struct {
	EmailEnabled        bool `json:"emailEnabled" bson:"emailEnabled"`               // Bật/tắt toàn bộ email
	WeeklyReportEnabled bool `json:"weeklyReportEnabled" bson:"weeklyReportEnabled"` // Nhận báo cáo pipeline hàng tuần
	OverdueAlertsEnabled bool `json:"overdueAlertsEnabled" bson:"overdueAlertsEnabled"` // Nhận cảnh báo contact quá hạn liên hệ
}

// User đại diện cho người dùng hệ thống.
// Token được cấp ngoài luồng (seed/admin), hệ thống chỉ verify.
type User struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string             `json:"email" bson:"email" index:"unique"`
	DisplayName       string             `json:"displayName" bson:"displayName"`
	Role              string             `json:"role" bson:"role" index:"single"`
	JobTitle          string             `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	NotificationPrefs NotificationPrefs  `json:"notificationPrefs" bson:"notificationPrefs"`
	IsSystem          bool               `json:"isSystem,omitempty" bson:"isSystem,omitempty"` // User hệ thống (admin seed), không thể xóa qua API
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`

	// _Relationships khai báo quan hệ để base service kiểm tra trước khi xóa:
	// user còn là owner của account/opportunity hoặc còn được gán activity thì không xóa được.
	_Relationships []string `bson:"-" json:"-" relationship:"collection:accounts,field:ownerId,message:Không thể xóa user vì còn %d account đang thuộc sở hữu.|collection:opportunities,field:ownerId,message:Không thể xóa user vì còn %d opportunity đang thuộc sở hữu."`
}
