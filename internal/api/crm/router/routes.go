// Package router đăng ký các route thuộc domain CRM: Account, Contact, Product,
// Opportunity CRUD, các route sync mirror-array, activity/blocker và insight.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/handler"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/middleware"
	apirouter "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/router"
)

// Register đăng ký tất cả route CRM lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	accountHandler, err := crmhdl.NewAccountHandler()
	if err != nil {
		return fmt.Errorf("create account handler: %w", err)
	}
	contactHandler, err := crmhdl.NewContactHandler()
	if err != nil {
		return fmt.Errorf("create contact handler: %w", err)
	}
	productHandler, err := crmhdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("create product handler: %w", err)
	}
	opportunityHandler, err := crmhdl.NewOpportunityHandler()
	if err != nil {
		return fmt.Errorf("create opportunity handler: %w", err)
	}

	// CRUD đầy đủ cho 4 collection chính
	r.RegisterCRUDRoutes(v1, "/accounts", accountHandler, apirouter.ReadWriteConfig, "Account")
	r.RegisterCRUDRoutes(v1, "/contacts", contactHandler, apirouter.ReadWriteConfig, "Contact")
	r.RegisterCRUDRoutes(v1, "/products", productHandler, apirouter.ReadWriteConfig, "Product")
	r.RegisterCRUDRoutes(v1, "/opportunities", opportunityHandler, apirouter.ReadWriteConfig, "Opportunity")

	contactUpdateMw := middleware.AuthMiddleware("Contact.Update")
	contactDeleteMw := middleware.AuthMiddleware("Contact.Delete")
	productUpdateMw := middleware.AuthMiddleware("Product.Update")
	productDeleteMw := middleware.AuthMiddleware("Product.Delete")
	oppUpdateMw := middleware.AuthMiddleware("Opportunity.Update")
	authOnlyMw := middleware.AuthMiddleware("")

	// Sync hai chiều contact ⟺ product: update/delete kèm đồng bộ mirror-array,
	// response trả thêm syncReport
	apirouter.RegisterRouteWithMiddleware(v1, "/contacts", "PUT", "/:id/sync", []fiber.Handler{contactUpdateMw}, contactHandler.HandleUpdateWithSync)
	apirouter.RegisterRouteWithMiddleware(v1, "/contacts", "DELETE", "/:id/sync", []fiber.Handler{contactDeleteMw}, contactHandler.HandleDeleteWithSync)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "PUT", "/:id/sync", []fiber.Handler{productUpdateMw}, productHandler.HandleUpdateWithSync)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "DELETE", "/:id/sync", []fiber.Handler{productDeleteMw}, productHandler.HandleDeleteWithSync)

	// Activity nhúng trong opportunity
	apirouter.RegisterRouteWithMiddleware(v1, "/opportunities", "POST", "/:id/activities", []fiber.Handler{oppUpdateMw}, opportunityHandler.HandleAddActivity)
	apirouter.RegisterRouteWithMiddleware(v1, "/opportunities", "PUT", "/:id/activities/:activityId/complete", []fiber.Handler{oppUpdateMw}, opportunityHandler.HandleCompleteActivity)
	apirouter.RegisterRouteWithMiddleware(v1, "/opportunities", "PUT", "/:id/activities/:activityId/cancel", []fiber.Handler{oppUpdateMw}, opportunityHandler.HandleCancelActivity)

	// Blocker nhúng trong opportunity
	apirouter.RegisterRouteWithMiddleware(v1, "/opportunities", "POST", "/:id/blockers", []fiber.Handler{oppUpdateMw}, opportunityHandler.HandleAddBlocker)
	apirouter.RegisterRouteWithMiddleware(v1, "/opportunities", "PUT", "/:id/blockers/:blockerId/resolve", []fiber.Handler{oppUpdateMw}, opportunityHandler.HandleResolveBlocker)

	// Insight theo contact: lịch sử activity và trạng thái quá hạn liên hệ
	apirouter.RegisterRouteWithMiddleware(v1, "/contacts", "GET", "/:id/activities", []fiber.Handler{authOnlyMw}, contactHandler.HandleGetActivities)
	apirouter.RegisterRouteWithMiddleware(v1, "/contacts", "GET", "/:id/overdue", []fiber.Handler{authOnlyMw}, contactHandler.HandleGetOverdue)

	// Insight pipeline và báo cáo tuần
	apirouter.RegisterRouteWithMiddleware(v1, "/crm", "GET", "/insights/pipeline", []fiber.Handler{authOnlyMw}, opportunityHandler.HandlePipelineInsights)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm", "GET", "/insights/health", []fiber.Handler{authOnlyMw}, opportunityHandler.HandleHealthInsights)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm", "GET", "/reports/weekly", []fiber.Handler{authOnlyMw}, opportunityHandler.HandleWeeklyReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/crm", "POST", "/reports/weekly/send", []fiber.Handler{authOnlyMw}, opportunityHandler.HandleSendWeeklyReport)

	return nil
}
