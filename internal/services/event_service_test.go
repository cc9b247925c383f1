package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/pkg/utils"
)

func TestGetEventBySlug(t *testing.T) {
	ctx := context.Background()

	event := dbm.Event{
		Title:    "Java Jazz Festival",
		Slug:     "java-jazz-festival",
		Category: "music",
		Location: "Jakarta",
	}
	event.ID = uuid.New()

	t.Run("not found", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeCache())
		_, err := svc.GetEventBySlug(ctx, "missing")
		assert.ErrorIs(t, err, utils.ErrEventNotFound)
	})

	t.Run("serves repeated reads from cache", func(t *testing.T) {
		events := newFakeEventRepo(event)
		svc := NewEventService(events, newFakeCache())

		first, err := svc.GetEventBySlug(ctx, event.Slug)
		require.NoError(t, err)
		second, err := svc.GetEventBySlug(ctx, event.Slug)
		require.NoError(t, err)

		assert.Equal(t, first.Title, second.Title)
		assert.Equal(t, 1, events.finds, "second read must hit the cache")
	})
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeCache())

	resp, err := svc.CreateEvent(ctx, uuid.New(), request_models.CreateEventRequest{
		Title:     "Pesta Rakyat 2026",
		Category:  "festival",
		Location:  "Bandung",
		StartDate: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 1, 23, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "pesta-rakyat-2026", resp.Slug)

	stored, err := events.FindBySlug(ctx, "pesta-rakyat-2026")
	require.NoError(t, err)
	require.NotNil(t, stored)
}
