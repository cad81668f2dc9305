package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-market/shareit/internal/domain/booking"
)

func TestCompilePredicate_Leaf(t *testing.T) {
	sql, args, err := CompilePredicate(booking.BookerIs(42))
	require.NoError(t, err)
	assert.Equal(t, "bookings.booker_id = ?", sql)
	assert.Equal(t, []any{int64(42)}, args)
}

func TestCompilePredicate_NotNull(t *testing.T) {
	sql, args, err := CompilePredicate(booking.AnyState())
	require.NoError(t, err)
	assert.Equal(t, "bookings.state IS NOT NULL", sql)
	assert.Empty(t, args)
}

func TestCompilePredicate_JoinedTable(t *testing.T) {
	sql, args, err := CompilePredicate(booking.ItemOwnerIs(7))
	require.NoError(t, err)
	assert.Equal(t, "items.owner_id = ?", sql)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestCompilePredicate_Nested(t *testing.T) {
	now := time.Now().UTC()
	p := booking.BookerIs(1).And(
		booking.StateIs(booking.StateCurrent).Or(booking.Spans(now)),
	)

	sql, args, err := CompilePredicate(p)
	require.NoError(t, err)
	assert.Equal(t,
		"(bookings.booker_id = ? AND "+
			"(bookings.state = ? OR "+
			"(bookings.start_date <= ? AND bookings.end_date >= ?)))",
		sql)
	assert.Len(t, args, 4)
}

func TestCompilePredicate_ArgOrder(t *testing.T) {
	now := time.Now().UTC()
	p := booking.BookerIs(1).And(booking.EndsBefore(now))

	sql, args, err := CompilePredicate(p)
	require.NoError(t, err)
	assert.Equal(t, "(bookings.booker_id = ? AND bookings.end_date < ?)", sql)
	require.Len(t, args, 2)
	assert.Equal(t, int64(1), args[0])
	assert.Equal(t, now, args[1])
}

func TestCompilePredicate_UnknownField(t *testing.T) {
	p := booking.Predicate{Cond: &booking.Condition{Field: "color", Op: booking.OpEq, Value: "red"}}
	_, _, err := CompilePredicate(p)
	assert.Error(t, err)
}

func TestCompilePredicate_MalformedJunction(t *testing.T) {
	p := booking.Predicate{Join: booking.JoinAnd}
	_, _, err := CompilePredicate(p)
	assert.Error(t, err)
}

func TestOrderClause(t *testing.T) {
	asc, err := orderClause(booking.ByStartAsc)
	require.NoError(t, err)
	assert.Equal(t, "bookings.start_date ASC", asc)

	desc, err := orderClause(booking.ByStartDesc)
	require.NoError(t, err)
	assert.Equal(t, "bookings.start_date DESC", desc)

	_, err = orderClause(booking.Sort{Field: "color"})
	assert.Error(t, err)
}
