package booking

import "time"

// Field names a queryable booking attribute.
type Field string

const (
	FieldBookerID  Field = "booker_id"
	FieldItemID    Field = "item_id"
	FieldItemOwner Field = "item_owner_id"
	FieldState     Field = "state"
	FieldStart     Field = "start"
	FieldEnd       Field = "end"
)

// Op is a comparison operator in a predicate leaf.
type Op string

const (
	OpEq      Op = "="
	OpNe      Op = "<>"
	OpLt      Op = "<"
	OpGt      Op = ">"
	OpLte     Op = "<="
	OpGte     Op = ">="
	OpNotNull Op = "not null"
)

// Junction joins two sub-predicates.
type Junction string

const (
	JoinAnd Junction = "AND"
	JoinOr  Junction = "OR"
)

// Condition is a single field comparison.
type Condition struct {
	Field Field
	Op    Op
	Value any
}

// Predicate is a composable boolean expression over booking attributes.
// A leaf carries a Condition; an inner node joins Left and Right with
// AND or OR. Any store that can evaluate this tree is substitutable.
type Predicate struct {
	Cond  *Condition
	Join  Junction
	Left  *Predicate
	Right *Predicate
}

func leaf(f Field, op Op, v any) Predicate {
	return Predicate{Cond: &Condition{Field: f, Op: op, Value: v}}
}

// And returns a predicate matching both p and q.
func (p Predicate) And(q Predicate) Predicate {
	return Predicate{Join: JoinAnd, Left: &p, Right: &q}
}

// Or returns a predicate matching p or q.
func (p Predicate) Or(q Predicate) Predicate {
	return Predicate{Join: JoinOr, Left: &p, Right: &q}
}

// BookerIs matches bookings requested by the given user.
func BookerIs(userID int64) Predicate { return leaf(FieldBookerID, OpEq, userID) }

// ItemIs matches bookings for the given item.
func ItemIs(itemID int64) Predicate { return leaf(FieldItemID, OpEq, itemID) }

// ItemOwnerIs matches bookings on items owned by the given user.
func ItemOwnerIs(userID int64) Predicate { return leaf(FieldItemOwner, OpEq, userID) }

// StateIs matches bookings in the given lifecycle state.
func StateIs(s State) Predicate { return leaf(FieldState, OpEq, string(s)) }

// StateNot matches bookings in any state other than the given one.
func StateNot(s State) Predicate { return leaf(FieldState, OpNe, string(s)) }

// AnyState matches every booking (the ALL filter's base predicate).
func AnyState() Predicate { return leaf(FieldState, OpNotNull, nil) }

// StartsAfter matches bookings whose window begins strictly after t.
func StartsAfter(t time.Time) Predicate { return leaf(FieldStart, OpGt, t) }

// StartsBefore matches bookings whose window begins strictly before t.
func StartsBefore(t time.Time) Predicate { return leaf(FieldStart, OpLt, t) }

// StartsAtOrBefore matches bookings whose window begins at or before t.
func StartsAtOrBefore(t time.Time) Predicate { return leaf(FieldStart, OpLte, t) }

// EndsBefore matches bookings whose window ends strictly before t.
func EndsBefore(t time.Time) Predicate { return leaf(FieldEnd, OpLt, t) }

// EndsAtOrAfter matches bookings whose window ends at or after t.
func EndsAtOrAfter(t time.Time) Predicate { return leaf(FieldEnd, OpGte, t) }

// Spans matches bookings whose window contains t.
func Spans(t time.Time) Predicate {
	return StartsAtOrBefore(t).And(EndsAtOrAfter(t))
}

// Sort orders a result set by a single field.
type Sort struct {
	Field Field
	Desc  bool
}

var (
	// ByStartAsc orders soonest-starting first (the CURRENT view).
	ByStartAsc = Sort{Field: FieldStart}
	// ByStartDesc orders latest-starting first (every other view).
	ByStartDesc = Sort{Field: FieldStart, Desc: true}
	// ByEndDesc orders latest-ending first (an item's most recent booking).
	ByEndDesc = Sort{Field: FieldEnd, Desc: true}
)

// Page addresses a page of results by index, not by row offset. Callers
// that hold a row offset map it with PageFromOffset.
type Page struct {
	Number int
	Size   int
}

// PageFromOffset maps a from/size pair onto a page index using integer
// division, reproducing the upstream API contract: only offsets that are
// exact multiples of size address the rows the caller expects.
func PageFromOffset(from, size int) Page {
	return Page{Number: from / size, Size: size}
}

// Offset returns the row offset of the page's first element.
func (p Page) Offset() int { return p.Number * p.Size }
