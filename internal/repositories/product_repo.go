package repositories

import (
	"errors"

	"alcolater/internal/models"
)

// ErrProductNotFound is returned by GetByID when no product has the given ID.
// Absence is a normal outcome for most callers, so it is a sentinel rather
// than a formatted error; check it with errors.Is.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every stored product. Ordering is storage-defined.
	GetAll() ([]models.Product, error)
	// GetByUserID returns the products owned by the given user.
	GetByUserID(userID string) ([]models.Product, error)
	// GetByID returns the product with the given ID, or ErrProductNotFound.
	GetByID(id string) (*models.Product, error)
	// Save persists the product, assigning a generated ID when it has none,
	// and otherwise overwriting the stored record with the matching ID.
	Save(product *models.Product) error
	// ExistsByID reports whether a product with the given ID is stored.
	ExistsByID(id string) (bool, error)
	// Delete removes the product with the given ID. Deleting an absent ID is
	// a no-op; callers that need to distinguish use ExistsByID first.
	Delete(id string) error
}
