// Package crmhdl xử lý các route HTTP cho domain CRM (Account, Contact, Product, Opportunity).
package crmhdl

import (
	"fmt"

	basehdl "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/base/handler"
	crmdto "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/dto"
	crmmodels "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/models"
	crmsvc "github.com/skuck001/iOlPartnerSolutions-sub001/internal/api/crm/service"
)

// AccountHandler xử lý các route CRUD cho account.
// Xóa account được chặn ở tầng service khi còn contact/product/opportunity tham chiếu.
type AccountHandler struct {
	*basehdl.BaseHandler[crmmodels.Account, crmdto.AccountCreateInput, crmdto.AccountUpdateInput]
	accountService *crmsvc.AccountService
}

// NewAccountHandler tạo mới AccountHandler
func NewAccountHandler() (*AccountHandler, error) {
	accountService, err := crmsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}
	return &AccountHandler{
		BaseHandler:    basehdl.NewBaseHandler[crmmodels.Account, crmdto.AccountCreateInput, crmdto.AccountUpdateInput](accountService.BaseServiceMongoImpl),
		accountService: accountService,
	}, nil
}
