package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/label"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// designFixture wires a DesignService over mock repositories with one
// product and one template owned by ownerID.
type designFixture struct {
	svc        *service.DesignService
	eventRepo  *MockRepository
	ownerID    uuid.UUID
	productID  uuid.UUID
	templateID uuid.UUID
}

func newDesignFixture(ctx context.Context) *designFixture {
	ownerID := uuid.New()
	productID := uuid.New()
	templateID := uuid.New()

	productRepo := new(MockRepository)
	productRepo.On("FindByID", ctx, productID).
		Return(&model.Product{ID: productID, OwnerID: ownerID, ProductName: "Smoked sausage", PricePerUnit: "10.00"}, nil)

	templateRepo := new(MockRepository)
	templateRepo.On("FindByID", ctx, templateID).
		Return(&model.LabelTemplate{ID: templateID, OwnerID: ownerID, Name: "Shelf", Width: 100, Height: 50}, nil)

	eventRepo := new(MockRepository)

	products := service.NewProductService(productRepo, new(MockTxStore))
	templates := service.NewTemplateService(templateRepo)

	return &designFixture{
		svc:        service.NewDesignService(products, templates, eventRepo),
		eventRepo:  eventRepo,
		ownerID:    ownerID,
		productID:  productID,
		templateID: templateID,
	}
}

func TestDesignSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("add, move and remove placements", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		placement, err := fx.svc.AddPlacement(ctx, fx.ownerID, sessionID, fx.productID, &fx.templateID, 0, 0)

		// then
		require.NoError(t, err)
		assert.Equal(t, 100.0, placement.Width)
		assert.Equal(t, 50.0, placement.Height)
		assert.Equal(t, "Smoked sausage", placement.Product.ProductName)

		// when moved
		require.NoError(t, fx.svc.MovePlacement(ctx, fx.ownerID, sessionID, placement.ID, 42, 99))

		placements, err := fx.svc.Placements(ctx, fx.ownerID, sessionID)
		require.NoError(t, err)
		require.Len(t, placements, 1)
		assert.Equal(t, 42.0, placements[0].X)
		assert.Equal(t, 99.0, placements[0].Y)

		// when removed
		require.NoError(t, fx.svc.RemovePlacement(ctx, fx.ownerID, sessionID, placement.ID))

		placements, err = fx.svc.Placements(ctx, fx.ownerID, sessionID)
		require.NoError(t, err)
		assert.Empty(t, placements)
	})

	t.Run("explicit dimensions instead of a template", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		placement, err := fx.svc.AddPlacement(ctx, fx.ownerID, sessionID, fx.productID, nil, 60, 40)

		// then
		require.NoError(t, err)
		assert.Equal(t, 60.0, placement.Width)
		assert.Equal(t, 40.0, placement.Height)
	})

	t.Run("missing dimensions and template", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		_, err := fx.svc.AddPlacement(ctx, fx.ownerID, sessionID, fx.productID, nil, 0, 0)

		// then
		require.ErrorIs(t, err, service.ErrInvalidTemplate)
	})

	t.Run("unknown session", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)

		// when
		err := fx.svc.ClearSheet(ctx, fx.ownerID, uuid.New())

		// then
		require.ErrorIs(t, err, service.ErrSessionNotFound)
	})

	t.Run("session of another owner is forbidden", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		err := fx.svc.ClearSheet(ctx, uuid.New(), sessionID)

		// then
		require.ErrorIs(t, err, service.ErrSessionForbidden)
	})

	t.Run("unknown placement fails closed", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		err := fx.svc.MovePlacement(ctx, fx.ownerID, sessionID, uuid.New(), 10, 10)

		// then
		require.ErrorIs(t, err, label.ErrPlacementNotFound)
	})

	t.Run("delete session", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		require.NoError(t, fx.svc.DeleteSession(ctx, fx.ownerID, sessionID))

		// then
		_, err := fx.svc.Placements(ctx, fx.ownerID, sessionID)
		require.ErrorIs(t, err, service.ErrSessionNotFound)
	})
}

func TestArrangeGrid(t *testing.T) {
	ctx := context.Background()

	t.Run("fills the page with the first product", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		_, err := fx.svc.AddPlacement(ctx, fx.ownerID, sessionID, fx.productID, &fx.templateID, 0, 0)
		require.NoError(t, err)

		// when
		require.NoError(t, fx.svc.ArrangeGrid(ctx, fx.ownerID, sessionID, &fx.templateID, 0, 0))

		// then: 100x50 labels on A4 fit 1 column x 5 rows
		placements, err := fx.svc.Placements(ctx, fx.ownerID, sessionID)
		require.NoError(t, err)
		assert.Len(t, placements, 5)
		for _, p := range placements {
			assert.Equal(t, "Smoked sausage", p.Product.ProductName)
		}
	})
}

func TestExportSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("renders SVG and records an export event", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		_, err := fx.svc.AddPlacement(ctx, fx.ownerID, sessionID, fx.productID, &fx.templateID, 0, 0)
		require.NoError(t, err)

		var capturedEvent *model.Event
		fx.eventRepo.On("Create", ctx, mock.AnythingOfType("*model.Event")).
			Run(func(args mock.Arguments) {
				capturedEvent = args.Get(1).(*model.Event)
			}).
			Return(&model.Event{}, nil)

		// when
		out, err := fx.svc.ExportSheet(ctx, fx.ownerID, sessionID)

		// then
		require.NoError(t, err)
		svg := string(out)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(svg), "<?xml"))
		assert.Contains(t, svg, "<svg")
		assert.Contains(t, svg, "Smoked sausage")

		require.NotNil(t, capturedEvent)
		assert.Equal(t, model.EventTypeSheetExported, capturedEvent.EventType)

		// exporting leaves the sheet untouched
		placements, err := fx.svc.Placements(ctx, fx.ownerID, sessionID)
		require.NoError(t, err)
		assert.Len(t, placements, 1)

		fx.eventRepo.AssertExpectations(t)
	})

	t.Run("empty sheet cannot be exported", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		out, err := fx.svc.ExportSheet(ctx, fx.ownerID, sessionID)

		// then
		require.ErrorIs(t, err, label.ErrEmptySheet)
		assert.Nil(t, out)
		fx.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("foreign session cannot be exported", func(t *testing.T) {
		// given
		fx := newDesignFixture(ctx)
		sessionID := fx.svc.CreateSession(ctx, fx.ownerID)

		// when
		out, err := fx.svc.ExportSheet(ctx, uuid.New(), sessionID)

		// then
		require.ErrorIs(t, err, service.ErrSessionForbidden)
		assert.Nil(t, out)
	})
}

func TestDesignSessionOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("product of another owner cannot be placed", func(t *testing.T) {
		// given
		ownerID := uuid.New()
		foreignProduct := uuid.New()

		productRepo := new(MockRepository)
		productRepo.On("FindByID", ctx, foreignProduct).Return(nil, repository.ErrNotFound)

		products := service.NewProductService(productRepo, new(MockTxStore))
		templates := service.NewTemplateService(new(MockRepository))
		svc := service.NewDesignService(products, templates, new(MockRepository))

		sessionID := svc.CreateSession(ctx, ownerID)

		// when
		_, err := svc.AddPlacement(ctx, ownerID, sessionID, foreignProduct, nil, 60, 40)

		// then
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}
