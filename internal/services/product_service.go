package services

import (
	"errors"
	"fmt"
	"log"

	"alcolater/internal/models"
	"alcolater/internal/repositories"
	"alcolater/pkg/rabbitmq"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client // optional, nil disables event publishing
}

// NewProductService creates a new ProductService. The RabbitMQ client may be
// nil, in which case no lifecycle events are published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetAllProducts retrieves all products, narrowed to a single owner when the
// filter carries a non-empty user ID.
func (s *ProductService) GetAllProducts(filter *models.ProductFilter) ([]models.Product, error) {
	if filter != nil && filter.UserID != "" {
		return s.repo.GetByUserID(filter.UserID)
	}
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID. Absence is a normal
// outcome and is reported as a nil product with a nil error.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct builds a product from the input and persists it. The ID is
// left empty so the repository assigns one. Input validation is the caller's
// responsibility; the service stores whatever it is given.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:              input.Name,
		Price:             input.Price,
		Volume:            input.Volume,
		AlcoholPercentage: input.AlcoholPercentage,
	}
	if input.UserID != nil {
		product.UserID = *input.UserID
	}

	if err := s.repo.Save(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publishEvent("product.created", product.ID, product.UserID)
	return product, nil
}

// UpdateProduct overwrites an existing product from the input. Name, price,
// volume and alcohol percentage are always overwritten; the owner is
// overwritten only when the input supplies one (partial-update rule). An
// unknown ID is reported as a nil product with a nil error.
func (s *ProductService) UpdateProduct(id string, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, nil
		}
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Volume = input.Volume
	product.AlcoholPercentage = input.AlcoholPercentage
	if input.UserID != nil {
		product.UserID = *input.UserID
	}

	if err := s.repo.Save(product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.publishEvent("product.updated", product.ID, product.UserID)
	return product, nil
}

// DeleteProduct deletes a product by its ID. It returns true when a product
// was deleted and false when no product with the ID existed.
func (s *ProductService) DeleteProduct(id string) (bool, error) {
	exists, err := s.repo.ExistsByID(id)
	if err != nil {
		return false, fmt.Errorf("failed to check product %s before delete: %w", id, err)
	}
	if !exists {
		return false, nil
	}

	if err := s.repo.Delete(id); err != nil {
		return false, fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	s.publishEvent("product.deleted", id, "")
	return true, nil
}

// publishEvent publishes a product lifecycle event. Publishing is best-effort:
// failures are logged and never surfaced to the caller.
func (s *ProductService) publishEvent(event, productID, userID string) {
	if s.mqClient == nil {
		return
	}

	eventData := map[string]interface{}{
		"event":     event,
		"productID": productID,
	}
	if userID != "" {
		eventData["userID"] = userID
	}

	if err := s.mqClient.PublishProductEvent(eventData); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", event, productID, err)
	}
}
