package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/orzutravel/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPackageRepository implements domain.PackageRepository
type MongoPackageRepository struct {
	collection *mongo.Collection
}

// NewMongoPackageRepository creates a new package repository
// Note: No index creation to ensure zero-impact deployment on existing collections
func NewMongoPackageRepository(db *mongo.Database) *MongoPackageRepository {
	return &MongoPackageRepository{
		collection: db.Collection("packages"),
	}
}

// packageDoc is the stored shape. Timestamps are unix milliseconds, matching
// what the public API serves, so no conversion happens on the read path.
type packageDoc struct {
	StoreID   primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	NameUz    string             `bson:"name_uz"`
	NameRu    string             `bson:"name_ru"`
	Price     float64            `bson:"price"`
	TextUz    string             `bson:"text_uz"`
	TextRu    string             `bson:"text_ru"`
	Media     []domain.MediaItem `bson:"media"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (d *packageDoc) toDomain() *domain.TravelPackage {
	return &domain.TravelPackage{
		StoreID:   d.StoreID.Hex(),
		ID:        d.ID,
		Name:      domain.LocalizedText{Uz: d.NameUz, Ru: d.NameRu},
		Price:     d.Price,
		Text:      domain.LocalizedText{Uz: d.TextUz, Ru: d.TextRu},
		Media:     d.Media,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// List returns every package, newest first.
func (r *MongoPackageRepository) List(ctx context.Context) ([]*domain.TravelPackage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*domain.TravelPackage
	for cursor.Next(ctx) {
		var doc packageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode package: %w", err)
		}
		packages = append(packages, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}
	return packages, nil
}

// Create inserts a package after checking that no document already carries
// the same application id. The check and the insert are two separate
// operations, so concurrent creates with the same id can still race; the id
// is a freshly generated ULID so collisions do not occur in practice.
func (r *MongoPackageRepository) Create(ctx context.Context, pkg *domain.TravelPackage) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"id": pkg.ID})
	if err != nil {
		return fmt.Errorf("failed to check package existence: %w", err)
	}
	if count > 0 {
		return domain.ErrConflict
	}

	now := time.Now().UnixMilli()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	doc := packageDoc{
		ID:        pkg.ID,
		NameUz:    pkg.Name.Uz,
		NameRu:    pkg.Name.Ru,
		Price:     pkg.Price,
		TextUz:    pkg.Text.Uz,
		TextRu:    pkg.Text.Ru,
		Media:     pkg.Media,
		CreatedAt: pkg.CreatedAt,
		UpdatedAt: pkg.UpdatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.StoreID = oid.Hex()
	}
	return nil
}

// Update merges the provided fields into the stored document and refreshes
// updated_at. Absent fields keep their stored values.
func (r *MongoPackageRepository) Update(ctx context.Context, storeID string, upd domain.PackageUpdate) error {
	oid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return domain.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UnixMilli()}
	if upd.Name != nil {
		set["name_uz"] = upd.Name.Uz
		set["name_ru"] = upd.Name.Ru
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Text != nil {
		set["text_uz"] = upd.Text.Uz
		set["text_ru"] = upd.Text.Ru
	}
	if upd.Media != nil {
		set["media"] = *upd.Media
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the document. Deleting an id that is already gone succeeds.
func (r *MongoPackageRepository) Delete(ctx context.Context, storeID string) error {
	oid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		// Unparseable ids address nothing; treated the same as already deleted.
		return nil
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}

// Get returns the package addressed by store id.
func (r *MongoPackageRepository) Get(ctx context.Context, storeID string) (*domain.TravelPackage, error) {
	oid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc packageDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByAppID returns the package with the given application id.
func (r *MongoPackageRepository) GetByAppID(ctx context.Context, id string) (*domain.TravelPackage, error) {
	var doc packageDoc
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return doc.toDomain(), nil
}
