package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/brandcatalog/internal/domain"
	"github.com/utafrali/brandcatalog/internal/repository"
	apperrors "github.com/utafrali/brandcatalog/pkg/errors"
)

// --- Mock Repository ---

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeUnitOfWork hands the same mock repository to every caller and counts
// transactions.
type fakeUnitOfWork struct {
	repo      *mockBrandRepository
	txCount   int
	commitErr error
}

func (u *fakeUnitOfWork) Brands() repository.BrandRepository { return u.repo }

func (u *fakeUnitOfWork) WithinTx(_ context.Context, fn func(repository.BrandRepository) error) error {
	u.txCount++
	if err := fn(u.repo); err != nil {
		return err
	}
	return u.commitErr
}

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBrandCreated(ctx context.Context, brand *domain.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *mockPublisher) PublishBrandUpdated(ctx context.Context, brand *domain.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *mockPublisher) PublishBrandDeleted(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Test Helpers ---

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService() (*BrandService, *fakeUnitOfWork, *mockPublisher) {
	uow := &fakeUnitOfWork{repo: new(mockBrandRepository)}
	pub := new(mockPublisher)
	svc := NewBrandService(uow, pub, newTestLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, uow, pub
}

func existingBrand() *domain.Brand {
	return &domain.Brand{
		ID:          1,
		Name:        "Toyota",
		Description: "Marca japonesa",
		CreatedAt:   time.Date(1937, 8, 28, 0, 0, 0, 0, time.UTC),
	}
}

// --- ListBrands ---

func TestListBrands(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	expected := []domain.Brand{*existingBrand()}
	uow.repo.On("List", ctx).Return(expected, nil)

	brands, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, brands)
	assert.Zero(t, uow.txCount)
}

func TestListBrands_Error(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	uow.repo.On("List", ctx).Return(nil, errors.New("connection refused"))

	brands, err := svc.ListBrands(ctx)
	assert.Nil(t, brands)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list brands")
}

// --- GetBrand ---

func TestGetBrand_Found(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	uow.repo.On("GetByID", ctx, int64(1)).Return(existingBrand(), nil)

	brand, err := svc.GetBrand(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, existingBrand(), brand)
}

func TestGetBrand_NotFound(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	uow.repo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NotFound("brand", "99"))

	brand, err := svc.GetBrand(ctx, 99)
	assert.Nil(t, brand)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, domain.MsgBrandNotFound, apperrors.Message(err))
}

func TestGetBrand_UnexpectedError(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	uow.repo.On("GetByID", ctx, int64(1)).Return(nil, errors.New("timeout"))

	_, err := svc.GetBrand(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "timeout")
}

// --- CreateBrand ---

func TestCreateBrand_StampsUTCAndAssignsID(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Create", ctx, mock.AnythingOfType("*domain.Brand")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Brand).ID = 4
		}).
		Return(nil)
	pub.On("PublishBrandCreated", ctx, mock.AnythingOfType("*domain.Brand")).Return(nil)

	brand, err := svc.CreateBrand(ctx, &CreateBrandInput{Name: "Tesla", Description: "EV maker"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), brand.ID)
	assert.Equal(t, "Tesla", brand.Name)
	assert.Equal(t, "EV maker", brand.Description)
	assert.True(t, fixedNow.Equal(brand.CreatedAt))
	assert.Equal(t, time.UTC, brand.CreatedAt.Location())
	assert.Equal(t, 1, uow.txCount)
	pub.AssertExpectations(t)
}

func TestCreateBrand_PublishFailureDoesNotFail(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Create", ctx, mock.Anything).Return(nil)
	pub.On("PublishBrandCreated", ctx, mock.Anything).Return(errors.New("broker down"))

	brand, err := svc.CreateBrand(ctx, &CreateBrandInput{Name: "Tesla", Description: "EV maker"})
	require.NoError(t, err)
	assert.NotNil(t, brand)
}

func TestCreateBrand_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		input CreateBrandInput
	}{
		{"blank name", CreateBrandInput{Name: "  ", Description: "x"}},
		{"long name", CreateBrandInput{Name: strings.Repeat("n", domain.MaxNameLength+1), Description: "x"}},
		{"blank description", CreateBrandInput{Name: "Tesla"}},
		{"long description", CreateBrandInput{Name: "Tesla", Description: strings.Repeat("d", domain.MaxDescriptionLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, uow, pub := newTestService()

			_, err := svc.CreateBrand(context.Background(), &tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Zero(t, uow.txCount)
			uow.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			pub.AssertNotCalled(t, "PublishBrandCreated", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBrand_StoreError(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	brand, err := svc.CreateBrand(ctx, &CreateBrandInput{Name: "Tesla", Description: "EV maker"})
	assert.Nil(t, brand)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create brand")
	pub.AssertNotCalled(t, "PublishBrandCreated", mock.Anything, mock.Anything)
}

// --- UpdateBrand ---

func TestUpdateBrand_ChangesOnlyNameAndDescription(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	original := existingBrand()
	uow.repo.On("GetByID", ctx, int64(1)).Return(original, nil)
	uow.repo.On("Update", ctx, mock.MatchedBy(func(b *domain.Brand) bool {
		return b.ID == 1 && b.Name == "Toyota Motor" && b.Description == "Actualizada"
	})).Return(nil)
	pub.On("PublishBrandUpdated", ctx, mock.Anything).Return(nil)

	updated, err := svc.UpdateBrand(ctx, &UpdateBrandInput{ID: 1, Name: "Toyota Motor", Description: "Actualizada"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Toyota Motor", updated.Name)
	assert.Equal(t, "Actualizada", updated.Description)
	assert.Equal(t, existingBrand().CreatedAt, updated.CreatedAt)
	assert.Equal(t, 1, uow.txCount)
	uow.repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdateBrand_InvalidIDSkipsStore(t *testing.T) {
	for _, id := range []int64{0, -1} {
		svc, uow, _ := newTestService()

		_, err := svc.UpdateBrand(context.Background(), &UpdateBrandInput{ID: id, Name: "x", Description: "y"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.Equal(t, domain.MsgInvalidID, apperrors.Message(err))
		assert.Zero(t, uow.txCount)
		uow.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	}
}

func TestUpdateBrand_NotFound(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("GetByID", ctx, int64(42)).Return(nil, apperrors.NotFound("brand", "42"))

	_, err := svc.UpdateBrand(ctx, &UpdateBrandInput{ID: 42, Name: "x", Description: "y"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, domain.MsgBrandNotFound, apperrors.Message(err))
	uow.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "PublishBrandUpdated", mock.Anything, mock.Anything)
}

func TestUpdateBrand_InvalidFields(t *testing.T) {
	svc, uow, _ := newTestService()
	ctx := context.Background()

	uow.repo.On("GetByID", ctx, int64(1)).Return(existingBrand(), nil)

	_, err := svc.UpdateBrand(ctx, &UpdateBrandInput{ID: 1, Name: "", Description: "y"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	uow.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBrand_CommitError(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()
	uow.commitErr = errors.New("commit transaction: serialization failure")

	uow.repo.On("GetByID", ctx, int64(1)).Return(existingBrand(), nil)
	uow.repo.On("Update", ctx, mock.Anything).Return(nil)

	updated, err := svc.UpdateBrand(ctx, &UpdateBrandInput{ID: 1, Name: "x", Description: "y"})
	assert.Nil(t, updated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialization failure")
	pub.AssertNotCalled(t, "PublishBrandUpdated", mock.Anything, mock.Anything)
}

// --- DeleteBrand ---

func TestDeleteBrand_Success(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Delete", ctx, int64(3)).Return(nil)
	pub.On("PublishBrandDeleted", ctx, int64(3)).Return(nil)

	require.NoError(t, svc.DeleteBrand(ctx, 3))
	assert.Equal(t, 1, uow.txCount)
	pub.AssertExpectations(t)
}

func TestDeleteBrand_InvalidIDSkipsStore(t *testing.T) {
	svc, uow, _ := newTestService()

	err := svc.DeleteBrand(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Zero(t, uow.txCount)
	uow.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBrand_NotFound(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Delete", ctx, int64(42)).Return(apperrors.NotFound("brand", "42"))

	err := svc.DeleteBrand(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, domain.MsgBrandNotFound, apperrors.Message(err))
	pub.AssertNotCalled(t, "PublishBrandDeleted", mock.Anything, mock.Anything)
}

func TestDeleteBrand_PublishFailureDoesNotFail(t *testing.T) {
	svc, uow, pub := newTestService()
	ctx := context.Background()

	uow.repo.On("Delete", ctx, int64(3)).Return(nil)
	pub.On("PublishBrandDeleted", ctx, int64(3)).Return(errors.New("broker down"))

	assert.NoError(t, svc.DeleteBrand(ctx, 3))
}
