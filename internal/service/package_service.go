package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/orzutravel/api/internal/domain"
	"golang.org/x/sync/singleflight"
)

const listCacheTTL = 60 * time.Second

// PackageService owns the travel-package lifecycle: admin CRUD, the cached
// public listing and media relay. Mutations invalidate the list cache so the
// site reflects changes on the next read.
type PackageService struct {
	repo     domain.PackageRepository
	cache    domain.PackageListCache
	uploader domain.MediaUploader
	archiver domain.MediaArchiver // optional, nil when no archive is configured
	group    singleflight.Group
}

// NewPackageService creates a new package service. archiver may be nil.
func NewPackageService(
	repo domain.PackageRepository,
	cache domain.PackageListCache,
	uploader domain.MediaUploader,
	archiver domain.MediaArchiver,
) *PackageService {
	return &PackageService{
		repo:     repo,
		cache:    cache,
		uploader: uploader,
		archiver: archiver,
	}
}

// List returns all packages newest-first, served from cache when possible.
// Concurrent cache misses collapse into a single store read.
func (s *PackageService) List(ctx context.Context) ([]*domain.TravelPackage, error) {
	cached, err := s.cache.GetList(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		// Degraded cache must not take the public site down.
		log.Printf("[package] list cache read failed: %v", err)
	}

	result, err, _ := s.group.Do("packages:list", func() (interface{}, error) {
		packages, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if cacheErr := s.cache.SetList(ctx, packages, listCacheTTL); cacheErr != nil {
			log.Printf("[package] list cache write failed: %v", cacheErr)
		}
		return packages, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return result.([]*domain.TravelPackage), nil
}

// Create validates the input, assigns a fresh application id and persists
// the package. Descriptions are stored as entered; sanitization happens on
// the public read path.
func (s *PackageService) Create(ctx context.Context, in domain.PackageInput) (*domain.TravelPackage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	media := in.Media
	if media == nil {
		media = []domain.MediaItem{}
	}
	pkg := &domain.TravelPackage{
		ID:    ulid.Make().String(),
		Name:  in.Name,
		Price: in.Price,
		Text:  in.Text,
		Media: media,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return pkg, nil
}

// Update merges the provided fields into the stored package.
func (s *PackageService) Update(ctx context.Context, storeID string, upd domain.PackageUpdate) (*domain.TravelPackage, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, storeID, upd); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return s.repo.Get(ctx, storeID)
}

// Delete removes a package. Media already relayed to the hosting provider is
// left in place; the provider has no delete API worth depending on.
func (s *PackageService) Delete(ctx context.Context, storeID string) error {
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

// Get returns a package by store id.
func (s *PackageService) Get(ctx context.Context, storeID string) (*domain.TravelPackage, error) {
	return s.repo.Get(ctx, storeID)
}

// GetByAppID returns a package by its public application id.
func (s *PackageService) GetByAppID(ctx context.Context, id string) (*domain.TravelPackage, error) {
	return s.repo.GetByAppID(ctx, id)
}

// UploadMedia relays the given files to the hosting provider and, when an
// archive is configured, keeps a copy of the originals. Archive failures are
// logged and swallowed: the relayed URLs are what the site serves.
func (s *PackageService) UploadMedia(ctx context.Context, files []domain.MediaFile) ([]domain.MediaItem, error) {
	items, err := s.uploader.UploadMedia(ctx, files)
	if err != nil {
		return nil, err
	}

	if s.archiver != nil {
		for _, f := range files {
			if _, err := s.archiver.Archive(ctx, f); err != nil {
				log.Printf("[package] archive of %s failed: %v", f.Name, err)
			}
		}
	}
	return items, nil
}

func (s *PackageService) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidateList(ctx); err != nil {
		log.Printf("[package] list cache invalidation failed: %v", err)
	}
}
