package main

import (
	"github.com/skuck001/iOlPartnerSolutions-sub001/config"
	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {

	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry

	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB.
// Tên đăng ký phải khớp với tên trong relationship tag của model để
// base service kiểm tra được tham chiếu trước khi xóa.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Accounts,
		global.MongoDB_ColNames.Contacts,
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.Opportunities,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}

	}

	return nil
}
