// Package router cung cấp hạ tầng đăng ký route dùng chung cho các domain.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/middleware"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route:
//
// ❌ CÁCH SAI (middleware KHÔNG được gọi):
//    router.Get("/path", middleware.AuthMiddleware(""), handler)
//
// ✅ CÁCH ĐÚNG (phải dùng):
//    authMiddleware := middleware.AuthMiddleware("")
//    RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//    → Middleware được gắn qua .Use() trên group nên luôn được gọi
//
// Nếu thêm route mới, PHẢI dùng RegisterRouteWithMiddleware.
// ============================================================================

// CRUDHandler định nghĩa interface cho các handler CRUD
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	FindOneAndUpdate(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	FindOneAndDelete(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	UpsertMany(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	// Create
	InsOne  bool // Insert One
	InsMany bool // Insert Many

	// Read
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	// Update
	UpdOne  bool // Update One
	UpdMany bool // Update Many
	UpdById bool // Update By Id
	FindUpd bool // Find One And Update

	// Delete
	DelOne  bool // Delete One
	DelMany bool // Delete Many
	DelById bool // Delete By Id
	FindDel bool // Find One And Delete

	// Other
	Count    bool // Count Documents
	Distinct bool // Distinct
	Upsert   bool // Upsert One
	UpsMany  bool // Upsert Many
	Exists   bool // Document Exists
}

// Config cho từng collection. Các domain dùng chung: ReadOnlyConfig, ReadWriteConfig.
var (
	// ReadOnlyConfig chỉ cho phép đọc (find, find-one, count, distinct, exists).
	ReadOnlyConfig = CRUDConfig{
		InsOne: false, InsMany: false,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: false, UpdMany: false, UpdById: false,
		FindUpd: false,
		DelOne:  false, DelMany: false, DelById: false,
		FindDel: false,
		Count:   true, Distinct: true,
		Upsert: false, UpsMany: false, Exists: true,
	}

	// ReadWriteConfig cho phép đầy đủ CRUD.
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdMany: true, UpdById: true,
		FindUpd: true,
		DelOne:  true, DelMany: true, DelById: true,
		FindDel: true,
		Count:   true, Distinct: true,
		Upsert: true, UpsMany: true, Exists: true,
	}
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() trên group
// (cách duy nhất hoạt động đúng trong Fiber v3, xem comment ở đầu file).
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký các route CRUD cho một collection.
// Mỗi nhóm operation được bảo vệ bằng permission tương ứng: <prefix>.Insert/.Read/.Update/.Delete.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, permissionPrefix string) {
	authInsertMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Insert")
	authReadMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Read")
	authUpdateMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Update")
	authDeleteMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Delete")

	// Create operations
	if config.InsOne {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-one", []fiber.Handler{authInsertMiddleware}, h.InsertOne)
	}
	if config.InsMany {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-many", []fiber.Handler{authInsertMiddleware}, h.InsertMany)
	}

	// Read operations
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", []fiber.Handler{authReadMiddleware}, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", []fiber.Handler{authReadMiddleware}, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", []fiber.Handler{authReadMiddleware}, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", []fiber.Handler{authReadMiddleware}, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", []fiber.Handler{authReadMiddleware}, h.FindWithPagination)
	}

	// Update operations
	if config.UpdOne {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-one", []fiber.Handler{authUpdateMiddleware}, h.UpdateOne)
	}
	if config.UpdMany {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-many", []fiber.Handler{authUpdateMiddleware}, h.UpdateMany)
	}
	if config.UpdById {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-by-id/:id", []fiber.Handler{authUpdateMiddleware}, h.UpdateById)
	}
	if config.FindUpd {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/find-one-and-update", []fiber.Handler{authUpdateMiddleware}, h.FindOneAndUpdate)
	}

	// Delete operations
	if config.DelOne {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-one", []fiber.Handler{authDeleteMiddleware}, h.DeleteOne)
	}
	if config.DelMany {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-many", []fiber.Handler{authDeleteMiddleware}, h.DeleteMany)
	}
	if config.DelById {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-by-id/:id", []fiber.Handler{authDeleteMiddleware}, h.DeleteById)
	}
	if config.FindDel {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/find-one-and-delete", []fiber.Handler{authDeleteMiddleware}, h.FindOneAndDelete)
	}

	// Other operations
	if config.Count {
		// Count chỉ cần đăng nhập, không cần permission cụ thể
		authOnlyMiddleware := middleware.AuthMiddleware("")
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", []fiber.Handler{authOnlyMiddleware}, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct", []fiber.Handler{authReadMiddleware}, h.Distinct)
	}
	if config.Upsert {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/upsert-one", []fiber.Handler{authUpdateMiddleware}, h.Upsert)
	}
	if config.UpsMany {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/upsert-many", []fiber.Handler{authUpdateMiddleware}, h.UpsertMany)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/exists", []fiber.Handler{authReadMiddleware}, h.DocumentExists)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)

	// Route hệ thống: health check (không qua auth)
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}
	v1.Get("/system/health", systemHandler.HandleHealth)

	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
