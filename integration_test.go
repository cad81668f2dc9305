//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-market/shareit/internal/application"
	"github.com/shareit-market/shareit/internal/domain/booking"
	"github.com/shareit-market/shareit/pkg/domain"
)

// TestBookingLifecycle runs the full flow against PostgreSQL: create a
// booking, approve it, and find it through the state-filtered views of
// both the booker and the owner.
func TestBookingLifecycle(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	ownerID := createUser(t, stack, "owner", "owner@example.com")
	bookerID := createUser(t, stack, "booker", "booker@example.com")
	itemID := createItem(t, stack, ownerID, "drill")

	now := time.Now().UTC()
	created, err := stack.Bookings.CreateBooking(ctx, bookerID, application.CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(time.Hour),
		End:    now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)
	assert.Equal(t, "drill", created.Item.Name)
	assert.Equal(t, "booker", created.Booker.Name)

	// The booker cannot approve; the stranger cannot even see it.
	_, err = stack.Bookings.UpdateBookingStatus(ctx, bookerID, created.ID, true)
	assert.True(t, domain.IsAccessDenied(err))

	strangerID := createUser(t, stack, "stranger", "stranger@example.com")
	_, err = stack.Bookings.GetBooking(ctx, strangerID, created.ID)
	assert.True(t, domain.IsAccessDenied(err))

	approved, err := stack.Bookings.UpdateBookingStatus(ctx, ownerID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	// Approving twice hits the already-decided rule.
	_, err = stack.Bookings.UpdateBookingStatus(ctx, ownerID, created.ID, false)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// The booking shows up under FUTURE and ALL for the booker, and in
	// the owner's cross-item view.
	list, err := stack.Bookings.GetAllBookings(ctx, bookerID, booking.FilterFuture, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	list, err = stack.Bookings.GetAllBookings(ctx, bookerID, booking.FilterPast, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = stack.Bookings.GetAllBookingsForAllItems(ctx, ownerID, booking.FilterAll, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// An owner with no items gets the nil sentinel, not an empty page.
	result, err := stack.Bookings.GetAllBookingsForAllItems(ctx, strangerID, booking.FilterAll, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

// TestStaleStateQuery verifies that an approved booking whose stored time
// bucket went stale is still found by the live-clock side of the filter.
func TestStaleStateQuery(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	ownerID := createUser(t, stack, "owner", "owner@example.com")
	bookerID := createUser(t, stack, "booker", "booker@example.com")
	itemID := createItem(t, stack, ownerID, "drill")

	seedPastBooking(t, db, itemID, bookerID)

	list, err := stack.Bookings.GetAllBookings(ctx, bookerID, booking.FilterPast, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "APPROVED", list[0].Status)

	list, err = stack.Bookings.GetAllBookings(ctx, bookerID, booking.FilterCurrent, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// TestAllFilterIsUnionOfStates seeds bookings across every lifecycle
// state and verifies the ALL view equals the duplicate-free union of the
// five filtered views. The stale WAITING row with an elapsed window is
// the interesting case: it matches both the WAITING and PAST filters but
// must appear in ALL exactly once.
func TestAllFilterIsUnionOfStates(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	ownerID := createUser(t, stack, "owner", "owner@example.com")
	bookerID := createUser(t, stack, "booker", "booker@example.com")
	itemID := createItem(t, stack, ownerID, "drill")

	now := time.Now().UTC()
	seeded := []int64{
		seedBooking(t, db, itemID, bookerID, "WAITING", now.Add(time.Hour), now.Add(2*time.Hour)),
		seedBooking(t, db, itemID, bookerID, "WAITING", now.Add(-2*time.Hour), now.Add(-time.Hour)),
		seedBooking(t, db, itemID, bookerID, "REJECTED", now.Add(3*time.Hour), now.Add(4*time.Hour)),
		seedBooking(t, db, itemID, bookerID, "CURRENT", now.Add(-time.Hour), now.Add(time.Hour)),
		seedBooking(t, db, itemID, bookerID, "PAST", now.Add(-4*time.Hour), now.Add(-3*time.Hour)),
		seedBooking(t, db, itemID, bookerID, "FUTURE", now.Add(5*time.Hour), now.Add(6*time.Hour)),
	}

	all, err := stack.Bookings.GetAllBookings(ctx, bookerID, booking.FilterAll, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, len(seeded), "ALL must return every booking exactly once")

	allIDs := map[int64]bool{}
	for _, dto := range all {
		assert.False(t, allIDs[dto.ID], "booking %d duplicated in ALL", dto.ID)
		allIDs[dto.ID] = true
	}
	for _, id := range seeded {
		assert.True(t, allIDs[id], "booking %d missing from ALL", id)
	}

	union := map[int64]bool{}
	filters := []booking.StateFilter{
		booking.FilterCurrent, booking.FilterPast, booking.FilterFuture,
		booking.FilterWaiting, booking.FilterRejected,
	}
	for _, filter := range filters {
		list, err := stack.Bookings.GetAllBookings(ctx, bookerID, filter, nil, nil)
		require.NoError(t, err, "filter %s", filter)
		for _, dto := range list {
			assert.True(t, allIDs[dto.ID], "filter %s returned booking %d absent from ALL", filter, dto.ID)
			union[dto.ID] = true
		}
	}
	assert.Equal(t, allIDs, union, "ALL must equal the union of the filtered views")

	// Owner's cross-item view obeys the same property.
	ownerAll, err := stack.Bookings.GetAllBookingsForAllItems(ctx, ownerID, booking.FilterAll, nil, nil)
	require.NoError(t, err)
	assert.Len(t, ownerAll, len(seeded))
}

// TestCommentsRequireFinishedBooking exercises the comment rule end to
// end: no comment without an elapsed booking, then a comment once a past
// booking exists.
func TestCommentsRequireFinishedBooking(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	ownerID := createUser(t, stack, "owner", "owner@example.com")
	bookerID := createUser(t, stack, "booker", "booker@example.com")
	itemID := createItem(t, stack, ownerID, "drill")

	_, err := stack.Items.AddComment(ctx, bookerID, itemID, "great drill")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	seedPastBooking(t, db, itemID, bookerID)

	comment, err := stack.Items.AddComment(ctx, bookerID, itemID, "great drill")
	require.NoError(t, err)
	assert.Equal(t, "booker", comment.AuthorName)

	view, err := stack.Items.GetItemByID(ctx, ownerID, itemID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "great drill", view.Comments[0].Text)
	require.NotNil(t, view.LastBooking, "owner sees the elapsed booking")
	assert.Equal(t, bookerID, view.LastBooking.BookerID)
	assert.Nil(t, view.NextBooking)
}

// TestUserEmailConflict verifies the unique-email constraint surfaces as
// a conflict through the whole stack.
func TestUserEmailConflict(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	createUser(t, stack, "alice", "alice@example.com")

	_, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "impostor", Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

// TestRequestFlow covers posting a request and answering it with an item.
func TestRequestFlow(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStack(t, db)
	ctx := context.Background()

	requesterID := createUser(t, stack, "requester", "requester@example.com")
	listerID := createUser(t, stack, "lister", "lister@example.com")

	req, err := stack.Requests.CreateRequest(ctx, requesterID, "need a drill")
	require.NoError(t, err)

	available := true
	_, err = stack.Items.CreateItem(ctx, listerID, application.CreateItemRequest{
		Name:        "drill",
		Description: "answers the request",
		Available:   &available,
		RequestID:   &req.ID,
	})
	require.NoError(t, err)

	mine, err := stack.Requests.GetUserRequests(ctx, requesterID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Items, 1)
	assert.Equal(t, "drill", mine[0].Items[0].Name)

	// The requester's own request is excluded from the everyone-else view.
	others, err := stack.Requests.GetAllRequests(ctx, requesterID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, others)

	others, err = stack.Requests.GetAllRequests(ctx, listerID, nil, nil)
	require.NoError(t, err)
	require.Len(t, others, 1)
}
