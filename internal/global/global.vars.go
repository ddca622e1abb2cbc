package global

import (
	"github.com/skuck001/iOlPartnerSolutions-sub001/config"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users         string // Tên collection cho người dùng
	Accounts      string // Tên collection cho account đối tác
	Contacts      string // Tên collection cho người liên hệ
	Products      string // Tên collection cho sản phẩm
	Opportunities string // Tên collection cho cơ hội kinh doanh
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
