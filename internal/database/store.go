package database

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"returnsconsole/internal/models"
	"returnsconsole/internal/returns"
)

const (
	OrdersCollection    = "orders"
	ProductsCollection  = "products"
	CustomersCollection = "customers"
)

var ErrNotFound = errors.New("not found")

// Store reads snapshots of the collections the return flow works on. It
// never writes.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Products returns every non-deleted product, newest first.
func (s *Store) Products(ctx context.Context) ([]returns.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(ProductsCollection).Find(ctx, bson.M{"isDeleted": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]returns.Product, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		if entry, ok := catalogEntry(raw); ok {
			products = append(products, entry)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// catalogEntry decodes one product document. Documents that cannot be
// decoded or carry no id are skipped so that one bad product does not
// take the whole catalog down.
func catalogEntry(raw bson.M) (returns.Product, bool) {
	product, err := normalizeProductDocument(raw)
	if err != nil {
		logrus.WithError(err).WithField("_id", raw["_id"]).Warn("skipping undecodable product document")
		return returns.Product{}, false
	}
	entry := product.CatalogEntry()
	return entry, !entry.ID.IsZero()
}

func (s *Store) Catalog(ctx context.Context) (returns.Catalog, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return returns.NewCatalog(products), nil
}

// Orders returns the raw order documents; their line encodings are left
// for the normalizer.
func (s *Store) Orders(ctx context.Context) ([]returns.Order, error) {
	cursor, err := s.db.Collection(OrdersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]returns.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, returns.Order(doc))
	}
	return orders, nil
}

func (s *Store) Order(ctx context.Context, id returns.ID) (returns.Order, error) {
	var doc bson.M
	err := s.db.Collection(OrdersCollection).FindOne(ctx, idFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return returns.Order(doc), nil
}

func (s *Store) Customer(ctx context.Context, id returns.ID) (returns.Customer, error) {
	var customer models.Customer
	err := s.db.Collection(CustomersCollection).FindOne(ctx, idFilter(id)).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return returns.Customer{}, ErrNotFound
	}
	if err != nil {
		return returns.Customer{}, err
	}
	return customer.ReturnCustomer(), nil
}

// idFilter matches a document by its legacy "id", stored as a number or a
// string, or by "_id" when the identifier is an ObjectID hex.
func idFilter(id returns.ID) bson.M {
	candidates := bson.A{bson.M{"id": id.String()}}
	if n, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
		candidates = append(candidates, bson.M{"id": n}, bson.M{"id": float64(n)})
	}
	if oid, err := primitive.ObjectIDFromHex(id.String()); err == nil {
		candidates = append(candidates, bson.M{"_id": oid})
	}
	return bson.M{"$or": candidates}
}
