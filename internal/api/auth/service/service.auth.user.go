// Package authsvc chứa service xử lý người dùng và xác thực token.
package authsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/dto"
	models "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

// contextKey là kiểu riêng cho key trong context, tránh đụng độ với package khác
type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// SetUserIDToContext lưu userID của request hiện tại vào context.
// Handler gọi trước khi đưa context xuống service layer.
func SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserIDFromContext lấy userID đã lưu trong context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// IsAdministratorFromContext kiểm tra user trong context có role admin không.
// Được đăng ký vào base service khi khởi động để bảo vệ dữ liệu hệ thống (IsSystem).
func IsAdministratorFromContext(ctx context.Context) (bool, error) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return false, nil
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}
	user, err := GetUserCache().GetByID(ctx, objID)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](coll),
	}, nil
}

// FindByEmail tìm user theo email (email là unique)
func (s *UserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// GenerateToken cấp JWT cho user. Dùng khi seed admin hoặc admin cấp token cho user mới;
// không có endpoint login — token được chuyển cho user ngoài luồng.
func (s *UserService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := models.JwtClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(30 * 24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.MongoDB_ServerConfig.JwtSecret))
}

// VerifyToken xác thực chữ ký và hạn của token, trả về claims nếu hợp lệ.
func VerifyToken(tokenString string) (*models.JwtClaims, error) {
	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
		}
		return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// UpdateProfile cập nhật hồ sơ của chính user (không đổi email/role qua đường này).
// Dùng $set tường minh để các giá trị false trong notificationPrefs vẫn được ghi xuống.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *authdto.UserProfileUpdateInput) (models.User, error) {
	set := map[string]interface{}{}
	if input.DisplayName != nil {
		set["displayName"] = *input.DisplayName
	}
	if input.JobTitle != nil {
		set["jobTitle"] = *input.JobTitle
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}
	if input.NotificationPrefs != nil {
		set["notificationPrefs"] = models.NotificationPrefs{
			EmailEnabled:         input.NotificationPrefs.EmailEnabled,
			WeeklyReportEnabled:  input.NotificationPrefs.WeeklyReportEnabled,
			OverdueAlertsEnabled: input.NotificationPrefs.OverdueAlertsEnabled,
		}
	}
	if len(set) == 0 {
		return s.FindOneById(ctx, userID)
	}

	user, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return user, err
	}

	// Ghi trực tiếp qua UpdateById vẫn phát event, nhưng invalidate ngay cho chắc
	GetUserCache().Invalidate()
	return user, nil
}
