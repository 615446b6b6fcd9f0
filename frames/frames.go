// Package frames implements window-frame compilation policy: per-dialect
// capability tables, frame rewrite rules, and frame spec minimization.
//
// Everything in this package is a pure function over immutable nodes values.
// A capability Table is read-only after construction, so tables, registries,
// and the normalizer may be shared freely across goroutines.
package frames

import "github.com/maddock/winq/nodes"

// ModeSet is a bitmask of permitted frame modes.
type ModeSet uint8

// ModeBit returns the bit for a frame mode.
func ModeBit(m nodes.FrameMode) ModeSet { return 1 << uint(m) }

// Has reports whether the set contains the mode.
func (s ModeSet) Has(m nodes.FrameMode) bool { return s&ModeBit(m) != 0 }

// BoundSet is a bitmask of permitted boundary kinds.
type BoundSet uint16

// BoundBit returns the bit for a boundary kind.
func BoundBit(k nodes.BoundKind) BoundSet { return 1 << uint(k) }

// Has reports whether the set contains the boundary kind.
func (s BoundSet) Has(k nodes.BoundKind) bool { return s&BoundBit(k) != 0 }

// Bounds builds a BoundSet from the given kinds.
func Bounds(kinds ...nodes.BoundKind) BoundSet {
	var s BoundSet
	for _, k := range kinds {
		s |= BoundBit(k)
	}
	return s
}

// Modes builds a ModeSet from the given modes.
func Modes(modes ...nodes.FrameMode) ModeSet {
	var s ModeSet
	for _, m := range modes {
		s |= ModeBit(m)
	}
	return s
}

// Capability describes which frame modes and boundary kinds a function may
// carry on a given dialect. A zero Capability permits no frame at all.
type Capability struct {
	Modes  ModeSet
	Bounds BoundSet
}

// Table is a per-dialect capability table: a pure lookup from function kind
// to frame capability. Built once per dialect and immutable thereafter.
type Table struct {
	name     string
	byFunc   map[nodes.FuncKind]Capability
	fallback Capability
}

// NewTable builds a capability table. The byFunc map is copied so later
// mutation of the argument cannot affect the table.
func NewTable(name string, byFunc map[nodes.FuncKind]Capability, fallback Capability) *Table {
	m := make(map[nodes.FuncKind]Capability, len(byFunc))
	for k, v := range byFunc {
		m[k] = v
	}
	return &Table{name: name, byFunc: m, fallback: fallback}
}

// Name returns the dialect name the table was built for.
func (t *Table) Name() string { return t.name }

// Capability returns the frame capability for the function kind.
func (t *Table) Capability(fn nodes.FuncKind) Capability {
	if c, ok := t.byFunc[fn]; ok {
		return c
	}
	return t.fallback
}

// Allows reports whether the function may carry a frame of the given mode
// with a boundary of the given kind on this dialect.
func (t *Table) Allows(fn nodes.FuncKind, mode nodes.FrameMode, kind nodes.BoundKind) bool {
	c := t.Capability(fn)
	return c.Modes.Has(mode) && c.Bounds.Has(kind)
}

// --- Function classification ---

// rangeIntervalCapable is the set of aggregates that may keep a RANGE frame
// with interval boundaries.
var rangeIntervalCapable = map[nodes.FuncKind]bool{
	nodes.FnCount:     true,
	nodes.FnCountStar: true,
	nodes.FnSum:       true,
	nodes.FnMin:       true,
	nodes.FnMax:       true,
	nodes.FnMean:      true,
}

// analytic is the set of window functions with no aggregate semantics.
var analytic = map[nodes.FuncKind]bool{
	nodes.FnRowNumber:   true,
	nodes.FnRank:        true,
	nodes.FnDenseRank:   true,
	nodes.FnNtile:       true,
	nodes.FnPercentRank: true,
	nodes.FnCumeDist:    true,
	nodes.FnLag:         true,
	nodes.FnLead:        true,
	nodes.FnFirstValue:  true,
	nodes.FnLastValue:   true,
	nodes.FnNthValue:    true,
	nodes.FnFirst:       true,
	nodes.FnLast:        true,
}

// positional is the subset of analytics whose result depends on the frame:
// first/last/nth-value style functions.
var positional = map[nodes.FuncKind]bool{
	nodes.FnFirst:      true,
	nodes.FnLast:       true,
	nodes.FnNthValue:   true,
	nodes.FnFirstValue: true,
	nodes.FnLastValue:  true,
}

// RangeIntervalCapable reports whether the function may keep a RANGE frame
// with interval boundaries (Count, CountStar, Sum, Min, Max, Mean).
func RangeIntervalCapable(fn nodes.FuncKind) bool { return rangeIntervalCapable[fn] }

// Analytic reports whether the function is analytic (not an aggregate).
func Analytic(fn nodes.FuncKind) bool { return analytic[fn] }

// Positional reports whether the function is frame-dependent
// (First, Last, NthValue, FirstValue, LastValue).
func Positional(fn nodes.FuncKind) bool { return positional[fn] }

// --- Dialect tables ---

var allBoundLiterals = Bounds(
	nodes.BoundUnset,
	nodes.BoundUnboundedPreceding,
	nodes.BoundUnboundedFollowing,
	nodes.BoundCurrentRow,
	nodes.BoundOffset,
)

// capsFor assembles a table from three capability classes: aggregates,
// positional analytics, and the restricted remainder.
func capsFor(name string, aggregate, pos, restricted Capability) *Table {
	byFunc := make(map[nodes.FuncKind]Capability)
	for fn := range rangeIntervalCapable {
		byFunc[fn] = aggregate
	}
	for fn := range positional {
		byFunc[fn] = pos
	}
	byFunc[nodes.FnAny] = restricted
	byFunc[nodes.FnAll] = restricted
	return NewTable(name, byFunc, restricted)
}

// Snowflake is the reference dialect table: the six aggregates accept both
// ROWS and RANGE frames including interval boundaries; first/last/nth-value
// accept only row-offset ROWS frames; everything else is limited to the
// default cumulative ROWS frame.
func Snowflake() *Table {
	return capsFor("snowflake",
		Capability{Modes: Modes(nodes.FrameRows, nodes.FrameRange), Bounds: allBoundLiterals | BoundBit(nodes.BoundInterval)},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
	)
}

// Postgres allows interval RANGE frames on aggregates and row-offset frames
// on frame-dependent analytics.
func Postgres() *Table {
	return capsFor("postgres",
		Capability{Modes: Modes(nodes.FrameRows, nodes.FrameRange), Bounds: allBoundLiterals | BoundBit(nodes.BoundInterval)},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
	)
}

// MySQL allows interval RANGE frames on aggregates (MySQL 8+).
func MySQL() *Table {
	return capsFor("mysql",
		Capability{Modes: Modes(nodes.FrameRows, nodes.FrameRange), Bounds: allBoundLiterals | BoundBit(nodes.BoundInterval)},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
	)
}

// SQLite has no interval literal syntax: RANGE frames are fine but every
// boundary must be a literal keyword or row count.
func SQLite() *Table {
	noInterval := Capability{Modes: Modes(nodes.FrameRows, nodes.FrameRange), Bounds: allBoundLiterals}
	return capsFor("sqlite",
		noInterval,
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
		Capability{Modes: Modes(nodes.FrameRows), Bounds: allBoundLiterals},
	)
}
