package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/orzutravel/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePackageRepo is an in-memory domain.PackageRepository.
type fakePackageRepo struct {
	packages []*domain.TravelPackage
	nextID   int
	listErr  error
	creates  int
}

func (f *fakePackageRepo) List(ctx context.Context) ([]*domain.TravelPackage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	// Newest first, like the store.
	out := make([]*domain.TravelPackage, len(f.packages))
	for i, pkg := range f.packages {
		out[len(f.packages)-1-i] = pkg
	}
	return out, nil
}

func (f *fakePackageRepo) Create(ctx context.Context, pkg *domain.TravelPackage) error {
	f.creates++
	for _, existing := range f.packages {
		if existing.ID == pkg.ID {
			return domain.ErrConflict
		}
	}
	f.nextID++
	pkg.StoreID = fmt.Sprintf("store_%d", f.nextID)
	now := time.Now().UnixMilli()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	f.packages = append(f.packages, pkg)
	return nil
}

func (f *fakePackageRepo) Update(ctx context.Context, storeID string, upd domain.PackageUpdate) error {
	for _, pkg := range f.packages {
		if pkg.StoreID == storeID {
			if upd.Name != nil {
				pkg.Name = *upd.Name
			}
			if upd.Price != nil {
				pkg.Price = *upd.Price
			}
			if upd.Text != nil {
				pkg.Text = *upd.Text
			}
			if upd.Media != nil {
				pkg.Media = *upd.Media
			}
			pkg.UpdatedAt = time.Now().UnixMilli()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePackageRepo) Delete(ctx context.Context, storeID string) error {
	for i, pkg := range f.packages {
		if pkg.StoreID == storeID {
			f.packages = append(f.packages[:i], f.packages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePackageRepo) Get(ctx context.Context, storeID string) (*domain.TravelPackage, error) {
	for _, pkg := range f.packages {
		if pkg.StoreID == storeID {
			return pkg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePackageRepo) GetByAppID(ctx context.Context, id string) (*domain.TravelPackage, error) {
	for _, pkg := range f.packages {
		if pkg.ID == id {
			return pkg, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeListCache is an in-memory domain.PackageListCache.
type fakeListCache struct {
	list        []*domain.TravelPackage
	populated   bool
	sets, hits  int
	invalidates int
}

func (f *fakeListCache) GetList(ctx context.Context) ([]*domain.TravelPackage, error) {
	if !f.populated {
		return nil, domain.ErrCacheMiss
	}
	f.hits++
	return f.list, nil
}

func (f *fakeListCache) SetList(ctx context.Context, pkgs []*domain.TravelPackage, ttl time.Duration) error {
	f.list = pkgs
	f.populated = true
	f.sets++
	return nil
}

func (f *fakeListCache) InvalidateList(ctx context.Context) error {
	f.list = nil
	f.populated = false
	f.invalidates++
	return nil
}

// fakeUploader is a canned domain.MediaUploader.
type fakeUploader struct {
	items []domain.MediaItem
	err   error
	calls int
}

func (f *fakeUploader) UploadMedia(ctx context.Context, files []domain.MediaFile) ([]domain.MediaItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

// fakeArchiver records archived files.
type fakeArchiver struct {
	archived []string
	err      error
}

func (f *fakeArchiver) Archive(ctx context.Context, file domain.MediaFile) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.archived = append(f.archived, file.Name)
	return "http://archive/" + file.Name, nil
}

func newTestService() (*PackageService, *fakePackageRepo, *fakeListCache, *fakeUploader) {
	repo := &fakePackageRepo{}
	cache := &fakeListCache{}
	uploader := &fakeUploader{}
	return NewPackageService(repo, cache, uploader, nil), repo, cache, uploader
}

func validInput(name string) domain.PackageInput {
	return domain.PackageInput{
		Name:  domain.LocalizedText{Uz: name, Ru: name},
		Price: 100000,
		Text:  domain.LocalizedText{Uz: "tavsif", Ru: "описание"},
	}
}

func TestCreateAssignsID(t *testing.T) {
	svc, repo, _, _ := newTestService()

	pkg, err := svc.Create(context.Background(), validInput("Samarqand"))
	require.NoError(t, err)

	assert.NotEmpty(t, pkg.ID)
	assert.NotEmpty(t, pkg.StoreID)
	assert.NotZero(t, pkg.CreatedAt)
	assert.NotNil(t, pkg.Media, "media defaults to an empty slice")
	assert.Equal(t, 1, repo.creates)
}

func TestCreateValidationBlocksRepo(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.Create(context.Background(), domain.PackageInput{
		Name: domain.LocalizedText{Uz: "faqat uz"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, repo.creates, "invalid input must not reach the store")
}

func TestCreateInvalidatesListCache(t *testing.T) {
	svc, _, cache, _ := newTestService()
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	require.True(t, cache.populated)

	_, err = svc.Create(ctx, validInput("Buxoro"))
	require.NoError(t, err)
	assert.False(t, cache.populated, "mutation must drop the cached list")
}

func TestListFillsCacheOnce(t *testing.T) {
	svc, _, cache, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("Xiva"))
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second read should be a cache hit")
	assert.Equal(t, 1, cache.hits)
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	older, err := svc.Create(ctx, validInput("birinchi"))
	require.NoError(t, err)
	newer, err := svc.Create(ctx, validInput("ikkinchi"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestUpdateMergesFields(t *testing.T) {
	svc, _, cache, _ := newTestService()
	ctx := context.Background()

	pkg, err := svc.Create(ctx, validInput("Samarqand"))
	require.NoError(t, err)
	cache.invalidates = 0

	newPrice := 2000000.0
	updated, err := svc.Update(ctx, pkg.StoreID, domain.PackageUpdate{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, pkg.Name, updated.Name, "absent fields keep their values")
	assert.Equal(t, 1, cache.invalidates)
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService()

	price := 1.0
	_, err := svc.Update(context.Background(), "missing", domain.PackageUpdate{Price: &price})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _, cache, _ := newTestService()
	ctx := context.Background()

	pkg, err := svc.Create(ctx, validInput("Xiva"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, pkg.StoreID))
	require.NoError(t, svc.Delete(ctx, pkg.StoreID), "repeat delete is not an error")
	assert.GreaterOrEqual(t, cache.invalidates, 2)
}

func TestGetByAppID(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	pkg, err := svc.Create(ctx, validInput("Samarqand"))
	require.NoError(t, err)

	got, err := svc.GetByAppID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.StoreID, got.StoreID)

	_, err = svc.GetByAppID(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUploadMediaPassthrough(t *testing.T) {
	svc, _, _, uploader := newTestService()
	uploader.items = []domain.MediaItem{
		{Type: domain.MediaPhoto, URL: "http://t/1.jpg", FileID: "f1"},
	}

	items, err := svc.UploadMedia(context.Background(), []domain.MediaFile{
		{Name: "1.jpg", ContentType: "image/jpeg", Data: []byte("x")},
	})
	require.NoError(t, err)
	assert.Equal(t, uploader.items, items)
}

func TestUploadMediaArchivesOriginals(t *testing.T) {
	repo := &fakePackageRepo{}
	cache := &fakeListCache{}
	uploader := &fakeUploader{items: []domain.MediaItem{{Type: domain.MediaPhoto}}}
	archiver := &fakeArchiver{}
	svc := NewPackageService(repo, cache, uploader, archiver)

	_, err := svc.UploadMedia(context.Background(), []domain.MediaFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, archiver.archived)
}

func TestUploadMediaArchiveFailureIsSwallowed(t *testing.T) {
	repo := &fakePackageRepo{}
	cache := &fakeListCache{}
	uploader := &fakeUploader{items: []domain.MediaItem{{Type: domain.MediaPhoto}}}
	archiver := &fakeArchiver{err: errors.New("bucket gone")}
	svc := NewPackageService(repo, cache, uploader, archiver)

	items, err := svc.UploadMedia(context.Background(), []domain.MediaFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
	})
	require.NoError(t, err, "archive failure must not fail the upload")
	assert.Len(t, items, 1)
}

func TestUploadMediaProviderFailure(t *testing.T) {
	svc, _, _, uploader := newTestService()
	uploader.err = fmt.Errorf("%w: chat not found", domain.ErrUploadFailed)

	_, err := svc.UploadMedia(context.Background(), []domain.MediaFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
	})
	assert.True(t, errors.Is(err, domain.ErrUploadFailed))
}
