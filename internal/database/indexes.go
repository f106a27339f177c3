package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderIndexes cover the three ways an order can reference its customer.
func orderIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetName("customerId_index").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}},
			Options: options.Index().SetName("customer_id_index").SetSparse(true),
		},
		legacyIDIndex(),
	}
}

func legacyIDIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("legacy_id_index").SetSparse(true),
	}
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return ensureIndexes(db, OrdersCollection, orderIndexes())
}

func EnsureProductIndexes(db *mongo.Database) error {
	return ensureIndexes(db, ProductsCollection, []mongo.IndexModel{legacyIDIndex()})
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	return ensureIndexes(db, CustomersCollection, []mongo.IndexModel{legacyIDIndex()})
}

func ensureIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log := logrus.WithField("collection", collection)
	log.Debug("ensuring indexes")
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		log.WithError(err).Error("index creation failed")
		return err
	}
	log.WithField("indexes", names).Info("indexes ensured")
	return nil
}
