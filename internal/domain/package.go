package domain

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TravelPackage is the sole persisted entity: a travel offering with a
// bilingual name/description, a price and an ordered media sequence.
//
// StoreID is the identifier assigned by the document store at creation and
// is used for update/delete addressing. ID is the application-chosen unique
// identifier (a ULID generated at creation time) used for public URLs.
type TravelPackage struct {
	StoreID   string        `json:"storeId"`
	ID        string        `json:"id"`
	Name      LocalizedText `json:"name"`
	Price     float64       `json:"price"`
	Text      LocalizedText `json:"text"`
	Media     []MediaItem   `json:"media"`
	CreatedAt int64         `json:"createdAt"`
	UpdatedAt int64         `json:"updatedAt"`
}

// PackageInput carries the fields of a package create request.
type PackageInput struct {
	Name  LocalizedText `json:"name"`
	Price float64       `json:"price"`
	Text  LocalizedText `json:"text"`
	Media []MediaItem   `json:"media"`
}

// Validate checks the UI-level invariants: both localized names present,
// price non-negative.
func (in PackageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.By(requireBothLocales)),
		validation.Field(&in.Price, validation.Min(0.0)),
	)
}

// PackageUpdate is a partial update: only non-nil fields are merged into
// the stored document. The write path always refreshes UpdatedAt.
type PackageUpdate struct {
	Name  *LocalizedText `json:"name"`
	Price *float64       `json:"price"`
	Text  *LocalizedText `json:"text"`
	Media *[]MediaItem   `json:"media"`
}

// Validate checks the provided fields only.
func (u PackageUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.By(func(v interface{}) error {
			name, _ := v.(*LocalizedText)
			if name == nil {
				return nil
			}
			return requireBothLocales(*name)
		})),
		validation.Field(&u.Price, validation.By(func(v interface{}) error {
			price, _ := v.(*float64)
			if price == nil {
				return nil
			}
			return validation.Validate(*price, validation.Min(0.0))
		})),
	)
}

func requireBothLocales(v interface{}) error {
	text, _ := v.(LocalizedText)
	if text.Empty() {
		return validation.NewError("validation_localized_required", "both uz and ru values are required")
	}
	return nil
}

// PackageRepository is the document store client for the packages collection.
type PackageRepository interface {
	// List returns all packages ordered by creation time, newest first.
	List(ctx context.Context) ([]*TravelPackage, error)
	// Create inserts a new package. It fails with ErrConflict when a package
	// with the same application id already exists (best-effort pre-insert
	// check, not a transactional guarantee).
	Create(ctx context.Context, pkg *TravelPackage) error
	// Update merges the given fields into the stored document and refreshes
	// updated_at. Fails with ErrNotFound for an unknown store id.
	Update(ctx context.Context, storeID string, upd PackageUpdate) error
	// Delete removes the document. Deleting a nonexistent id is not an error.
	Delete(ctx context.Context, storeID string) error
	// Get returns the package addressed by store id, or ErrNotFound.
	Get(ctx context.Context, storeID string) (*TravelPackage, error)
	// GetByAppID returns the package with the given application id, or
	// ErrNotFound. Used by public detail pages.
	GetByAppID(ctx context.Context, id string) (*TravelPackage, error)
}

// PackageListCache caches the full package list between mutations.
type PackageListCache interface {
	GetList(ctx context.Context) ([]*TravelPackage, error)
	SetList(ctx context.Context, pkgs []*TravelPackage, ttl time.Duration) error
	InvalidateList(ctx context.Context) error
}
