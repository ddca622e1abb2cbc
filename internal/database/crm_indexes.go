// Package database - Index bổ sung cho CRM (nested fields, compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"github.com/skuck001/iOlPartnerSolutions-sub001/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCrmAdditionalIndexes tạo các index bổ sung cho CRM (nested fields, compound phức tạp).
// Gọi sau CreateIndexes cho từng collection CRM.
func CreateCrmAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// contacts: (accountId, name) — danh sách liên hệ theo account
	contacts := db.Collection(global.MongoDB_ColNames.Contacts)
	if _, err := contacts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetName("contact_account_name"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// contacts: productIds multikey — tra cứu ngược khi đồng bộ mirror array
	if _, err := contacts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "productIds", Value: 1},
		},
		Options: options.Index().SetName("contact_product_ids").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// products: contactIds multikey — tra cứu ngược khi đồng bộ mirror array
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "contactIds", Value: 1},
		},
		Options: options.Index().SetName("product_contact_ids").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// opportunities: (accountId, stage) — pipeline metrics filter
	opportunities := db.Collection(global.MongoDB_ColNames.Opportunities)
	if _, err := opportunities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "accountId", Value: 1},
			{Key: "stage", Value: 1},
		},
		Options: options.Index().SetName("opportunity_account_stage"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// opportunities: activities.relatedContactIds multikey nested — trích xuất activity theo contact
	if _, err := opportunities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "activities.relatedContactIds", Value: 1},
		},
		Options: options.Index().SetName("opportunity_activity_contacts").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// opportunities: activities.dateTime nested — báo cáo tuần quét theo thời gian hoạt động
	if _, err := opportunities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "activities.dateTime", Value: 1},
		},
		Options: options.Index().SetName("opportunity_activity_datetime").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
