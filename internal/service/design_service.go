package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/label"
	"github.com/labelgrid/labelgrid/internal/metrics"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	reposql "github.com/labelgrid/labelgrid/internal/repository/sql"
)

var (
	// ErrSessionNotFound is returned when a design session id is unknown.
	ErrSessionNotFound = errors.New("design session not found")

	// ErrSessionForbidden is returned when a session belongs to another owner.
	ErrSessionForbidden = errors.New("design session belongs to another owner")
)

// designSession holds one owner's sheet being laid out. Sheets live only in
// memory; a session is as durable as the process.
type designSession struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	sheet     *label.Sheet
	createdAt time.Time
}

// sheetEventData is the outbox payload for sheet export events.
type sheetEventData struct {
	SessionID  string `json:"session_id"`
	OwnerID    string `json:"owner_id"`
	Placements int    `json:"placements"`
}

// DesignService manages in-memory label design sessions. Handlers run
// concurrently, so every session access goes through the mutex.
type DesignService struct {
	products  *ProductService
	templates *TemplateService
	eventRepo repository.Repository

	mu       sync.Mutex
	sessions map[uuid.UUID]*designSession
}

func NewDesignService(products *ProductService, templates *TemplateService, eventRepo repository.Repository) *DesignService {
	return &DesignService{
		products:  products,
		templates: templates,
		eventRepo: eventRepo,
		sessions:  make(map[uuid.UUID]*designSession),
	}
}

// CreateSession starts a new empty design session for the owner.
func (ds *DesignService) CreateSession(_ context.Context, ownerID uuid.UUID) uuid.UUID {
	session := &designSession{
		id:        uuid.New(),
		ownerID:   ownerID,
		sheet:     label.NewSheet(),
		createdAt: time.Now(),
	}

	ds.mu.Lock()
	ds.sessions[session.id] = session
	ds.mu.Unlock()

	return session.id
}

// DeleteSession discards a session and its sheet.
func (ds *DesignService) DeleteSession(_ context.Context, ownerID, sessionID uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	delete(ds.sessions, session.id)
	return nil
}

// AddPlacement puts a product label onto the session's sheet. The label
// rectangle comes from the referenced template, or from explicit dimensions
// when no template id is given.
func (ds *DesignService) AddPlacement(ctx context.Context, ownerID, sessionID, productID uuid.UUID, templateID *uuid.UUID, width, height float64) (*label.Placement, error) {
	product, err := ds.products.GetProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	template, err := ds.resolveTemplate(ctx, ownerID, templateID, width, height)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	placement := session.sheet.Add(*product, *template)
	return placement, nil
}

// MovePlacement repositions a label. Out-of-bounds positions are allowed.
func (ds *DesignService) MovePlacement(_ context.Context, ownerID, sessionID, placementID uuid.UUID, x, y float64) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	return session.sheet.Move(placementID, x, y)
}

// ResizePlacement changes a label's rectangle and position in one step.
func (ds *DesignService) ResizePlacement(_ context.Context, ownerID, sessionID, placementID uuid.UUID, width, height, x, y float64) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	return session.sheet.Resize(placementID, width, height, x, y)
}

// RemovePlacement deletes a single label from the sheet.
func (ds *DesignService) RemovePlacement(_ context.Context, ownerID, sessionID, placementID uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	return session.sheet.Remove(placementID)
}

// ClearSheet removes every placement from the session's sheet.
func (ds *DesignService) ClearSheet(_ context.Context, ownerID, sessionID uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	session.sheet.Clear()
	return nil
}

// ArrangeGrid fills the page with copies of the first placement's product
// using the given template's rectangle.
func (ds *DesignService) ArrangeGrid(ctx context.Context, ownerID, sessionID uuid.UUID, templateID *uuid.UUID, width, height float64) error {
	template, err := ds.resolveTemplate(ctx, ownerID, templateID, width, height)
	if err != nil {
		return err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return err
	}

	session.sheet.ArrangeInGrid(*template)
	return nil
}

// Placements returns a snapshot of the session's sheet.
func (ds *DesignService) Placements(_ context.Context, ownerID, sessionID uuid.UUID) ([]label.Placement, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	return session.sheet.Placements(), nil
}

// ExportSheet renders the session's sheet as a printable SVG document and
// records a sheet.exported outbox event. The sheet itself is left untouched.
func (ds *DesignService) ExportSheet(ctx context.Context, ownerID, sessionID uuid.UUID) ([]byte, error) {
	ds.mu.Lock()
	session, err := ds.sessionLocked(ownerID, sessionID)
	if err != nil {
		ds.mu.Unlock()
		return nil, err
	}

	placements := session.sheet.Placements()
	out := label.ExportSVG(session.sheet)
	ds.mu.Unlock()

	if len(placements) == 0 {
		return nil, label.ErrEmptySheet
	}

	event, err := reposql.CreateEvent(model.EventTypeSheetExported, sheetEventData{
		SessionID:  sessionID.String(),
		OwnerID:    ownerID.String(),
		Placements: len(placements),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build export event: %w", err)
	}

	if _, err := ds.eventRepo.Create(ctx, event); err != nil {
		// The export itself succeeded; losing the notification is tolerable.
		slog.Error("Failed to record sheet export event", slog.String("session_id", sessionID.String()), slog.Any("err", err))
	}

	metrics.SheetsExported.Inc()

	return out, nil
}

// resolveTemplate loads the referenced template (owner-checked) or builds an
// ad-hoc one from explicit dimensions.
func (ds *DesignService) resolveTemplate(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID, width, height float64) (*model.LabelTemplate, error) {
	if templateID != nil {
		return ds.templates.GetTemplate(ctx, ownerID, *templateID)
	}

	if width <= 0 || height <= 0 {
		return nil, ErrInvalidTemplate
	}

	return &model.LabelTemplate{OwnerID: ownerID, Width: width, Height: height}, nil
}

// sessionLocked looks a session up and checks ownership. Callers hold ds.mu.
func (ds *DesignService) sessionLocked(ownerID, sessionID uuid.UUID) (*designSession, error) {
	session, ok := ds.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if session.ownerID != ownerID {
		return nil, ErrSessionForbidden
	}

	return session, nil
}
