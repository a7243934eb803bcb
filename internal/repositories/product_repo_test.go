package repositories_test

import (
	"testing"

	"alcolater/internal/models"
	"alcolater/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGORMRepo(t *testing.T) repositories.ProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory sqlite")
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return repositories.NewGORMProductRepository(db)
}

// Both implementations must satisfy the same contract, so every test runs
// against each of them.
func eachRepo(t *testing.T, test func(t *testing.T, repo repositories.ProductRepository)) {
	t.Run("gorm", func(t *testing.T) {
		test(t, newGORMRepo(t))
	})
	t.Run("memory", func(t *testing.T) {
		test(t, repositories.NewMemoryProductRepository())
	})
}

func testProduct(name, userID string) *models.Product {
	return &models.Product{
		Name:              name,
		Price:             decimal.RequireFromString("20.00"),
		Volume:            decimal.RequireFromString("750"),
		AlcoholPercentage: decimal.RequireFromString("40"),
		UserID:            userID,
	}
}

func TestProductRepository_SaveAssignsID(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		product := testProduct("Whisky", "u1")
		require.NoError(t, repo.Save(product))
		assert.NotEmpty(t, product.ID)

		stored, err := repo.GetByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, stored.ID)
		assert.Equal(t, "Whisky", stored.Name)
		assert.Equal(t, "u1", stored.UserID)
		assert.True(t, stored.Price.Equal(decimal.RequireFromString("20.00")))
		assert.True(t, stored.Volume.Equal(decimal.RequireFromString("750")))
		assert.True(t, stored.AlcoholPercentage.Equal(decimal.RequireFromString("40")))
	})
}

func TestProductRepository_SaveOverwritesExisting(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		product := testProduct("Whisky", "u1")
		require.NoError(t, repo.Save(product))

		product.Name = "Whisky Reserve"
		product.Price = decimal.RequireFromString("25.00")
		require.NoError(t, repo.Save(product))

		stored, err := repo.GetByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Whisky Reserve", stored.Name)
		assert.True(t, stored.Price.Equal(decimal.RequireFromString("25.00")))

		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestProductRepository_GetByIDNotFound(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		_, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_GetByUserID(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		require.NoError(t, repo.Save(testProduct("Whisky", "u1")))
		require.NoError(t, repo.Save(testProduct("Gin", "u1")))
		require.NoError(t, repo.Save(testProduct("Rum", "u2")))

		products, err := repo.GetByUserID("u1")
		require.NoError(t, err)
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, "u1", p.UserID)
		}

		products, err = repo.GetByUserID("nobody")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestProductRepository_ExistsByID(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		product := testProduct("Whisky", "u1")
		require.NoError(t, repo.Save(product))

		exists, err := repo.ExistsByID(product.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByID("missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repositories.ProductRepository) {
		product := testProduct("Whisky", "u1")
		require.NoError(t, repo.Save(product))

		require.NoError(t, repo.Delete(product.ID))
		_, err := repo.GetByID(product.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		// Deleting an absent ID is a no-op.
		assert.NoError(t, repo.Delete("missing"))
	})
}
