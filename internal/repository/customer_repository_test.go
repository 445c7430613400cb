package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Customer{
			ID:     "LC1700000000001",
			Name:   "Alice",
			PIN:    "1234",
			QRCode: "data:image/png;base64,abc",
		})
		require.NoError(t, err)
		assert.Equal(t, "LC1700000000001", created.ID)

		got, err := repo.GetByID(ctx, "LC1700000000001")
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, uint(0), got.Rewards)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Customer{
			ID:   "LC1700000000001",
			Name: "Alice again",
			PIN:  "1234",
		})
		assert.ErrorIs(t, err, ErrDuplicateCustomer)
	})
}

func TestCustomerRepository_GetByID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "LC999")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_IncrementRewards(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("successful increment", func(t *testing.T) {
		customer := &CustomerEntity{
			ID:      "LC100",
			Name:    "Bob",
			PIN:     "0000",
			Rewards: 2,
		}
		err := db.Write(ctx).Create(customer).Error
		require.NoError(t, err)

		err = repo.IncrementRewards(ctx, "LC100")
		assert.NoError(t, err)

		got, err := repo.GetByID(ctx, "LC100")
		require.NoError(t, err)
		assert.Equal(t, uint(3), got.Rewards)
	})

	t.Run("customer not found", func(t *testing.T) {
		err := repo.IncrementRewards(ctx, "LC999")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []*CustomerEntity{
		{ID: "LC1", Name: "old", PIN: "1111", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "LC2", Name: "new", PIN: "2222", CreatedAt: now},
		{ID: "LC3", Name: "mid", PIN: "3333", CreatedAt: now.Add(-time.Hour)},
	}
	for _, c := range seed {
		require.NoError(t, db.Write(ctx).Create(c).Error)
	}

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "LC2", customers[0].ID)
	assert.Equal(t, "LC3", customers[1].ID)
	assert.Equal(t, "LC1", customers[2].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCustomerRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: "LC1", Name: "a", PIN: "1111"}).Error)

		err := repo.Delete(ctx, "LC1")
		assert.NoError(t, err)

		_, err = repo.GetByID(ctx, "LC1")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		err := repo.Delete(ctx, "LC999")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestCustomerRepository_BulkDelete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	for _, id := range []string{"LC1", "LC2", "LC3"} {
		require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: id, Name: id, PIN: "1111"}).Error)
	}

	deleted, err := repo.BulkDelete(ctx, []string{"LC1", "LC3", "LC404"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_CreatedSince(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: "LC1", Name: "old", PIN: "1111", CreatedAt: now.Add(-48 * time.Hour)}).Error)
	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: "LC2", Name: "new", PIN: "2222", CreatedAt: now.Add(-time.Hour)}).Error)

	customers, err := repo.CreatedSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "LC2", customers[0].ID)
}
