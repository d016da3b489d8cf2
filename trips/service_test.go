package trips

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/link2itinerary/logger"
	"github.com/gaurav-prasanna/link2itinerary/validation"
)

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc := NewService(store, logger.NewTest(t))

	clock := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
	return svc
}

func parisRequest() CreateRequest {
	return CreateRequest{
		URL:               "https://airbnb.com/rooms/12345",
		Summary:           "Weekend getaway to Paris",
		Location:          "Paris, France",
		CheckIn:           "2026-05-01",
		CheckOut:          "2026-05-05",
		AccommodationName: "Charming apartment in Le Marais",
		AccommodationType: "airbnb",
	}
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())

	seed, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", seed.ID)
	assert.Equal(t, StatusSeedCreated, seed.Status)
	assert.Equal(t, seed.CreatedAt, seed.UpdatedAt)

	got, err := svc.Get(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
		field  string
	}{
		{"missing url", func(r *CreateRequest) { r.URL = "" }, "url"},
		{"bad url", func(r *CreateRequest) { r.URL = "airbnb rooms" }, "url"},
		{"missing location", func(r *CreateRequest) { r.Location = "" }, "location"},
		{"bad date", func(r *CreateRequest) { r.CheckIn = "May 1st" }, "checkIn"},
		{"unknown accommodation", func(r *CreateRequest) { r.AccommodationType = "castle" }, "accommodationType"},
		{"reversed dates", func(r *CreateRequest) { r.CheckOut = "2026-04-30" }, "checkOut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, NewMemoryStore())
			req := parisRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())
	seed, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)

	summary := "Updated trip description"
	hotel := "hotel"
	updated, err := svc.Update(ctx, seed.ID, UpdateRequest{Summary: &summary, AccommodationType: &hotel})
	require.NoError(t, err)

	assert.Equal(t, summary, updated.Summary)
	assert.Equal(t, "hotel", updated.AccommodationType)
	assert.Equal(t, "Paris, France", updated.Location)
	assert.True(t, updated.UpdatedAt.After(seed.UpdatedAt))

	bad := "yurt"
	_, err = svc.Update(ctx, seed.ID, UpdateRequest{AccommodationType: &bad})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())
	seed, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, seed.ID, StatusTeaserGenerated)
	require.NoError(t, err)
	assert.Equal(t, StatusTeaserGenerated, updated.Status)

	got, err := svc.Get(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusTeaserGenerated, got.Status)
}

func TestService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())

	first, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)
	second, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestService_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())
	seed, err := svc.Create(ctx, parisRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, seed.ID))
	assert.ErrorIs(t, svc.Delete(ctx, seed.ID), ErrNotFound)

	_, err = svc.Get(ctx, seed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_RejectsNonUUID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())

	_, err := svc.Get(ctx, "42")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "uuid", verr.Fields["id"])

	assert.ErrorAs(t, svc.Delete(ctx, "../etc"), &verr)
}
