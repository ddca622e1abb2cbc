// Package authsvc - Test hành vi TTL bất đối xứng của UserCache.
package authsvc

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/auth/models"
	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
)

// fakeUserStore giả lập store users: chỉ implement các hàm UserCache dùng,
// các hàm còn lại panic qua interface nhúng (test không được đụng tới).
type fakeUserStore struct {
	basesvc.BaseServiceMongo[models.User]

	users         []models.User
	findCalls     int
	findByIDCalls int
}

func (f *fakeUserStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.User, error) {
	f.findCalls++
	result := make([]models.User, len(f.users))
	copy(result, f.users)
	return result, nil
}

func (f *fakeUserStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	f.findByIDCalls++
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, common.ErrNotFound
}

// fakeClock cho test tự điều khiển thời gian
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestUser() models.User {
	return models.User{
		ID:          primitive.NewObjectID(),
		Email:       "test@example.com",
		DisplayName: "Test User",
		Role:        models.RoleUser,
	}
}

func TestUserCache_GetAllTonTrongTTL(t *testing.T) {
	store := &fakeUserStore{users: []models.User{newTestUser()}}
	clock := &fakeClock{current: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewUserCache(store, 10*time.Minute, clock.Now)

	ctx := context.Background()

	// Lần đầu: cache rỗng → đọc store
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	if store.findCalls != 1 {
		t.Fatalf("Lần đầu phải đọc store, findCalls = %d", store.findCalls)
	}

	// Trong TTL: phục vụ từ cache, không đọc store
	clock.Advance(9 * time.Minute)
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	if store.findCalls != 1 {
		t.Errorf("Trong TTL không được đọc lại store, findCalls = %d", store.findCalls)
	}

	// Quá TTL: phải đọc lại store và reset mốc thời gian
	clock.Advance(2 * time.Minute)
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	if store.findCalls != 2 {
		t.Errorf("Quá TTL phải đọc lại store, findCalls = %d", store.findCalls)
	}

	// Sau refresh, mốc đã reset → lại phục vụ từ cache
	clock.Advance(5 * time.Minute)
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	if store.findCalls != 2 {
		t.Errorf("Mốc thời gian phải reset sau refresh, findCalls = %d", store.findCalls)
	}
}

func TestUserCache_GetByIDKhongKiemTraTTL(t *testing.T) {
	user := newTestUser()
	store := &fakeUserStore{users: []models.User{user}}
	clock := &fakeClock{current: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewUserCache(store, 10*time.Minute, clock.Now)

	ctx := context.Background()

	// Làm ấm cache
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}

	// Cache đã quá TTL từ lâu, nhưng GetByID vẫn phục vụ thẳng từ cache đang ấm
	clock.Advance(24 * time.Hour)
	got, err := cache.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID lỗi: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByID trả về sai user: %s", got.ID.Hex())
	}
	if store.findByIDCalls != 0 {
		t.Errorf("Cache đang ấm thì GetByID không được đọc store, findByIDCalls = %d", store.findByIDCalls)
	}
}

func TestUserCache_GetByIDMissDocMotDocument(t *testing.T) {
	cached := newTestUser()
	uncached := newTestUser()
	store := &fakeUserStore{users: []models.User{cached, uncached}}
	clock := &fakeClock{current: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewUserCache(store, 10*time.Minute, clock.Now)

	ctx := context.Background()

	// Làm ấm rồi bỏ uncached khỏi cache bằng cách thay store sau khi warm
	store.users = []models.User{cached}
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	store.users = []models.User{cached, uncached}

	// Miss trong cache → đọc một document từ store, không ghi ngược vào cache
	got, err := cache.GetByID(ctx, uncached.ID)
	if err != nil {
		t.Fatalf("GetByID lỗi: %v", err)
	}
	if got.ID != uncached.ID {
		t.Errorf("GetByID trả về sai user: %s", got.ID.Hex())
	}
	if store.findByIDCalls != 1 {
		t.Errorf("Miss phải đọc đúng một document từ store, findByIDCalls = %d", store.findByIDCalls)
	}

	// Gọi lại vẫn miss (không ghi ngược vào cache)
	if _, err := cache.GetByID(ctx, uncached.ID); err != nil {
		t.Fatalf("GetByID lỗi: %v", err)
	}
	if store.findByIDCalls != 2 {
		t.Errorf("Kết quả miss không được ghi ngược vào cache, findByIDCalls = %d", store.findByIDCalls)
	}
}

func TestUserCache_Invalidate(t *testing.T) {
	store := &fakeUserStore{users: []models.User{newTestUser()}}
	clock := &fakeClock{current: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewUserCache(store, 10*time.Minute, clock.Now)

	ctx := context.Background()

	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	cache.Invalidate()

	// Sau invalidate, còn trong TTL vẫn phải đọc lại store
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("GetAll lỗi: %v", err)
	}
	if store.findCalls != 2 {
		t.Errorf("Sau Invalidate phải đọc lại store, findCalls = %d", store.findCalls)
	}
}
