// Package authdto chứa các input cho domain auth (User).
package authdto

// NotificationPrefsInput là input cho tùy chọn thông báo.
// Gửi đủ cả 3 cờ để giá trị false cũng được ghi xuống.
type NotificationPrefsInput struct {
	EmailEnabled         bool `json:"emailEnabled"`
	WeeklyReportEnabled  bool `json:"weeklyReportEnabled"`
	OverdueAlertsEnabled bool `json:"overdueAlertsEnabled"`
}

// UserCreateInput là input để tạo user (chỉ admin)
type UserCreateInput struct {
	Email             string                  `json:"email" validate:"required,email"`
	DisplayName       string                  `json:"displayName" validate:"required"`
	Role              string                  `json:"role" validate:"required,oneof=admin user"`
	JobTitle          string                  `json:"jobTitle,omitempty"`
	Phone             string                  `json:"phone,omitempty"`
	NotificationPrefs *NotificationPrefsInput `json:"notificationPrefs,omitempty"`
}

// UserUpdateInput là input để cập nhật user (chỉ admin)
type UserUpdateInput struct {
	DisplayName *string                 `json:"displayName,omitempty"`
	Role        *string                 `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	JobTitle    *string                 `json:"jobTitle,omitempty"`
	Phone       *string                 `json:"phone,omitempty"`
	NotificationPrefs *NotificationPrefsInput `json:"notificationPrefs,omitempty"`
}

// UserProfileUpdateInput là input để user tự cập nhật hồ sơ của mình.
// Không cho đổi email/role qua đường này.
type UserProfileUpdateInput struct {
	DisplayName       *string                 `json:"displayName,omitempty"`
	JobTitle          *string                 `json:"jobTitle,omitempty"`
	Phone             *string                 `json:"phone,omitempty"`
	NotificationPrefs *NotificationPrefsInput `json:"notificationPrefs,omitempty"`
}

// UserTokenIssueInput là input để admin cấp token cho một user.
type UserTokenIssueInput struct {
	UserID string `json:"userId" validate:"required" transform:"str_objectid,required"`
}
