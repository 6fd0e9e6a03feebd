package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/metrics"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/pricing"
	"github.com/labelgrid/labelgrid/internal/repository"
	reposql "github.com/labelgrid/labelgrid/internal/repository/sql"
)

// ProductTxStore mutates a product and records its outbox event in one
// transaction.
type ProductTxStore interface {
	CreateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error)
	UpdateProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) (*model.Product, error)
	DeleteProductWithEvent(ctx context.Context, product *model.Product, event *model.Event) error
}

// ProductInput carries the client-settable product fields. The per-unit
// price is always recomputed server-side, never taken from input.
type ProductInput struct {
	BrandName      string
	ProductName    string
	ProductNameEst string
	PacketSize     float64
	Unit           string
	PacketPrice    float64
}

// productEventData is the outbox payload for product events.
type productEventData struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	BrandName   string  `json:"brand_name"`
	ProductName string  `json:"product_name"`
	PacketPrice float64 `json:"packet_price"`
}

type ProductService struct {
	repo    repository.Repository
	txStore ProductTxStore
}

func NewProductService(repo repository.Repository, txStore ProductTxStore) *ProductService {
	return &ProductService{
		repo:    repo,
		txStore: txStore,
	}
}

func (ps *ProductService) CreateProduct(ctx context.Context, ownerID uuid.UUID, in ProductInput) (*model.Product, error) {
	product := &model.Product{
		OwnerID:        ownerID,
		BrandName:      in.BrandName,
		ProductName:    in.ProductName,
		ProductNameEst: in.ProductNameEst,
		PacketSize:     in.PacketSize,
		Unit:           pricing.ParseUnit(in.Unit),
		PacketPrice:    in.PacketPrice,
	}
	product.InitMeta()
	product.RecomputePricePerUnit()

	event, err := reposql.CreateEvent(model.EventTypeProductCreated, productEventData{
		ID:          product.ID.String(),
		OwnerID:     ownerID.String(),
		BrandName:   product.BrandName,
		ProductName: product.ProductName,
		PacketPrice: product.PacketPrice,
	})
	if err != nil {
		return nil, err
	}

	created, err := ps.txStore.CreateProductWithEvent(ctx, product, event)
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()

	return created, nil
}

func (ps *ProductService) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	resource, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product, ok := resource.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	// Foreign products are indistinguishable from absent ones.
	if product.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}

	return product, nil
}

func (ps *ProductService) UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, in ProductInput) (*model.Product, error) {
	product, err := ps.GetProduct(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	product.BrandName = in.BrandName
	product.ProductName = in.ProductName
	product.ProductNameEst = in.ProductNameEst
	product.PacketSize = in.PacketSize
	product.Unit = pricing.ParseUnit(in.Unit)
	product.PacketPrice = in.PacketPrice
	product.UpdatedAt = time.Now()
	product.RecomputePricePerUnit()

	event, err := reposql.CreateEvent(model.EventTypeProductUpdated, productEventData{
		ID:          product.ID.String(),
		OwnerID:     ownerID.String(),
		BrandName:   product.BrandName,
		ProductName: product.ProductName,
		PacketPrice: product.PacketPrice,
	})
	if err != nil {
		return nil, err
	}

	updated, err := ps.txStore.UpdateProductWithEvent(ctx, product, event)
	if err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()

	return updated, nil
}

func (ps *ProductService) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	product, err := ps.GetProduct(ctx, ownerID, id)
	if err != nil {
		return err
	}

	event, err := reposql.CreateEvent(model.EventTypeProductDeleted, productEventData{
		ID:          product.ID.String(),
		OwnerID:     ownerID.String(),
		BrandName:   product.BrandName,
		ProductName: product.ProductName,
		PacketPrice: product.PacketPrice,
	})
	if err != nil {
		return err
	}

	if err := ps.txStore.DeleteProductWithEvent(ctx, product, event); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()

	return nil
}

func (ps *ProductService) ListProducts(ctx context.Context, ownerID uuid.UUID, query repository.Query) ([]*model.Product, error) {
	query.Values[repository.OwnerIDField] = ownerID.String()

	resources, err := ps.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	products := make([]*model.Product, 0, len(resources))
	for _, resource := range resources {
		product, ok := resource.(*model.Product)
		if !ok {
			return nil, fmt.Errorf("listing products: %w", repository.ErrInvalidType)
		}
		products = append(products, product)
	}

	return products, nil
}
