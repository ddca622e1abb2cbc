package crmsvc

import (
	"fmt"

	basesvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/service"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/common"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến product
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Product](coll),
	}, nil
}
