package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labelgrid/labelgrid/internal/model"
	"github.com/labelgrid/labelgrid/internal/repository"
	"github.com/labelgrid/labelgrid/internal/service"
	"github.com/labelgrid/labelgrid/internal/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingEvent(eventType string) *model.Event {
	return &model.Event{
		ID:        uuid.New(),
		EventType: eventType,
		EventData: json.RawMessage(`{"id":"123"}`),
		Status:    model.EventStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestOutboxWorker_PublishesPendingEvents(t *testing.T) {
	// given
	event := pendingEvent(model.EventTypeProductCreated)

	eventRepo := new(MockRepository)
	eventRepo.On("List", mock.Anything, mock.Anything).Return([]repository.Resource{event}, nil)

	updater := new(MockEventStatusUpdater)
	updated := make(chan model.EventStatus, 1)
	updater.On("UpdateStatus", mock.Anything, event.ID, model.EventStatusProcessed).
		Run(func(args mock.Arguments) {
			select {
			case updated <- args.Get(2).(model.EventStatus):
			default:
			}
		}).
		Return(nil)

	publisher := new(MockPublisher)
	publisher.On("PublishCatalogMessage", mock.Anything, mock.MatchedBy(func(msg sqs.CatalogMessage) bool {
		return msg.EventID == event.ID.String() && msg.EventType == model.EventTypeProductCreated
	})).Return(nil)

	worker := service.NewOutboxWorker(eventRepo, updater, publisher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// when
	go worker.Start(ctx)

	// then
	select {
	case status := <-updated:
		assert.Equal(t, model.EventStatusProcessed, status)
	case <-time.After(2 * time.Second):
		t.Fatal("worker never marked the event processed")
	}

	cancel()
}

func TestOutboxWorker_MarksFailedEvents(t *testing.T) {
	// given
	event := pendingEvent(model.EventTypeSheetExported)

	eventRepo := new(MockRepository)
	eventRepo.On("List", mock.Anything, mock.Anything).Return([]repository.Resource{event}, nil)

	updater := new(MockEventStatusUpdater)
	updated := make(chan model.EventStatus, 1)
	updater.On("UpdateStatus", mock.Anything, event.ID, model.EventStatusFailed).
		Run(func(args mock.Arguments) {
			select {
			case updated <- args.Get(2).(model.EventStatus):
			default:
			}
		}).
		Return(nil)

	publisher := new(MockPublisher)
	publisher.On("PublishCatalogMessage", mock.Anything, mock.Anything).Return(errors.New("queue down"))

	worker := service.NewOutboxWorker(eventRepo, updater, publisher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// when
	go worker.Start(ctx)

	// then
	select {
	case status := <-updated:
		assert.Equal(t, model.EventStatusFailed, status)
	case <-time.After(2 * time.Second):
		t.Fatal("worker never marked the event failed")
	}

	cancel()
}

func TestOutboxWorker_Stop(t *testing.T) {
	// given
	eventRepo := new(MockRepository)
	eventRepo.On("List", mock.Anything, mock.Anything).Return([]repository.Resource{}, nil).Maybe()

	worker := service.NewOutboxWorker(eventRepo, new(MockEventStatusUpdater), new(MockPublisher), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		worker.Start(context.Background())
		close(done)
	}()

	// when
	worker.Stop()

	// then
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
