// Package crmsvc chứa các service thuộc domain CRM:
// CRUD cho account/contact/product/opportunity, đồng bộ mảng gương Contact↔Product,
// engine tính metrics thuần và báo cáo tuần.
package crmsvc

import (
	"fmt"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

// AccountService là cấu trúc chứa các phương thức liên quan đến account.
// Chặn xóa khi còn dữ liệu con tham chiếu được base service xử lý qua relationship tag trên model.
type AccountService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Account]
}

// NewAccountService tạo mới AccountService
func NewAccountService() (*AccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Accounts)
	if !exist {
		return nil, fmt.Errorf("failed to get accounts collection: %v", common.ErrNotFound)
	}
	return &AccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Account](coll),
	}, nil
}
