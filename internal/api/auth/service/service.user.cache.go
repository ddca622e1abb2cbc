package authsvc

import (
	"context"
	"sync"
	"time"

	models "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/events"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCache là cache read-through cho collection users (dữ liệu ít thay đổi).
// GetAll tôn trọng TTL; GetByID phục vụ thẳng từ cache đang ấm mà KHÔNG kiểm tra TTL
// (chỉ đọc bulk mới kiểm tra độ tươi). Hành vi bất đối xứng này giữ nguyên có chủ đích,
// xem ghi chú trong DESIGN.md.
type UserCache struct {
	store basesvc.BaseServiceMongo[models.User]
	ttl   time.Duration
	now   func() time.Time // inject được để test kiểm soát thời gian

	mu        sync.RWMutex
	users     []models.User
	fetchedAt time.Time
}

// NewUserCache tạo UserCache với store, TTL và hàm lấy thời gian hiện tại.
func NewUserCache(store basesvc.BaseServiceMongo[models.User], ttl time.Duration, now func() time.Time) *UserCache {
	if now == nil {
		now = time.Now
	}
	return &UserCache{
		store: store,
		ttl:   ttl,
		now:   now,
	}
}

var (
	userCacheInstance *UserCache
	userCacheOnce     sync.Once
)

// GetUserCache trả về instance duy nhất của UserCache (singleton).
// Lần gọi đầu tiên cũng đăng ký handler invalidate khi collection users thay đổi.
func GetUserCache() *UserCache {
	userCacheOnce.Do(func() {
		userService, err := NewUserService()
		if err != nil {
			panic(err)
		}
		ttl := 5 * time.Minute
		if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.UsersCacheTTLMinutes > 0 {
			ttl = time.Duration(global.MongoDB_ServerConfig.UsersCacheTTLMinutes) * time.Minute
		}
		userCacheInstance = NewUserCache(userService, ttl, time.Now)

		// Mọi thay đổi trên users (kể cả ghi ngoài UserService) đều làm cache cũ
		events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
			if e.CollectionName == global.MongoDB_ColNames.Users {
				userCacheInstance.Invalidate()
			}
		})
	})
	return userCacheInstance
}

// GetAll trả về toàn bộ users. Cache còn hạn và không rỗng thì trả bản cache,
// ngược lại đọc lại toàn bộ collection, thay cache và reset mốc thời gian.
func (c *UserCache) GetAll(ctx context.Context) ([]models.User, error) {
	c.mu.RLock()
	if len(c.users) > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		cached := make([]models.User, len(c.users))
		copy(cached, c.users)
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	users, err := c.store.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.users = users
	c.fetchedAt = c.now()
	c.mu.Unlock()

	result := make([]models.User, len(users))
	copy(result, users)
	return result, nil
}

// GetByID tìm user theo id. Cache đang ấm thì trả thẳng từ cache (không kiểm tra TTL);
// miss thì đọc một document từ store, không ghi ngược vào cache.
func (c *UserCache) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	c.mu.RLock()
	for i := range c.users {
		if c.users[i].ID == id {
			user := c.users[i]
			c.mu.RUnlock()
			return user, nil
		}
	}
	c.mu.RUnlock()

	return c.store.FindOneById(ctx, id)
}

// Invalidate xóa cache vô điều kiện. Gọi sau mọi ghi có thể ảnh hưởng nội dung cache.
func (c *UserCache) Invalidate() {
	c.mu.Lock()
	c.users = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
