package frames

import "github.com/maddock/winq/nodes"

// Rule is one frame rewrite rule. Rules are pure: Rewrite must return a new
// WindowCall (or the input unchanged) and may never mutate its argument.
type Rule interface {
	// Name identifies the rule for display and debugging.
	Name() string
	// Specificity orders competing rules; when several rules match the same
	// call, the one with the highest specificity wins. Dialect-specific
	// rules carry higher specificity than generic ones.
	Specificity() int
	// Matches reports whether the rule applies to the call.
	Matches(call *nodes.WindowCall) bool
	// Rewrite returns the adjusted call. Function and args are never altered.
	Rewrite(call *nodes.WindowCall) *nodes.WindowCall
}

// Registry holds an ordered set of rewrite rules. For each window call the
// single most specific matching rule is applied; ties go to the rule
// registered first. Registries are fixed after construction.
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry containing the given rules.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// Rules returns a copy of the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Apply rewrites the call with the most specific matching rule, or returns
// the call unchanged when no rule matches.
func (r *Registry) Apply(call *nodes.WindowCall) *nodes.WindowCall {
	var best Rule
	for _, rule := range r.rules {
		if rule.Matches(call) && (best == nil || rule.Specificity() > best.Specificity()) {
			best = rule
		}
	}
	if best == nil {
		return call
	}
	return best.Rewrite(call)
}

// --- Generic rule ---

// analyticExclusion strips explicit frames from analytic functions. This is
// the dialect-agnostic policy: analytics have no aggregate frame semantics,
// so a user-supplied frame is dropped rather than emitted.
type analyticExclusion struct{}

// ExcludeAnalyticFrames returns the generic frame-exclusion rule.
func ExcludeAnalyticFrames() Rule { return analyticExclusion{} }

func (analyticExclusion) Name() string     { return "exclude-analytic-frames" }
func (analyticExclusion) Specificity() int { return 0 }

func (analyticExclusion) Matches(call *nodes.WindowCall) bool {
	return Analytic(call.Func)
}

func (analyticExclusion) Rewrite(call *nodes.WindowCall) *nodes.WindowCall {
	if call.Window == nil || call.Window.Frame == nil {
		return call
	}
	return call.WithWindow(call.Window.WithFrame(nil))
}

// --- Dialect override ---

// restrictedFrame replaces whatever frame a restricted function carries with
// the default cumulative frame: start deferred to the dialect default, end at
// row offset zero following (the current row). It fires whether or not a
// frame pre-exists, overriding the generic exclusion for its function set so
// these functions always emit a deterministic, syntactically valid frame.
type restrictedFrame struct {
	kinds map[nodes.FuncKind]bool
}

// RestrictedDefaultFrame returns the dialect-specific override rule for the
// given function kinds.
func RestrictedDefaultFrame(kinds ...nodes.FuncKind) Rule {
	set := make(map[nodes.FuncKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return restrictedFrame{kinds: set}
}

func (restrictedFrame) Name() string     { return "restricted-default-frame" }
func (restrictedFrame) Specificity() int { return 10 }

func (r restrictedFrame) Matches(call *nodes.WindowCall) bool {
	return r.kinds[call.Func]
}

func (r restrictedFrame) Rewrite(call *nodes.WindowCall) *nodes.WindowCall {
	def := call.Window
	if def == nil {
		def = nodes.NewWindowDef()
	}
	def = def.WithFrame(&nodes.FrameSpec{
		Mode:  nodes.FrameRows,
		Start: nodes.Bound{Kind: nodes.BoundUnset},
		End:   nodes.RowsFollowing(0),
	})
	if len(def.OrderBy) == 0 {
		// A frame clause requires an ordering; order on NULL when the
		// caller supplied none.
		def = def.WithOrder(nodes.Null().Asc())
	}
	return call.WithWindow(def)
}

// --- Per-dialect registries ---

// restrictedKinds is the function set the Snowflake override applies to.
var restrictedKinds = []nodes.FuncKind{
	nodes.FnLag,
	nodes.FnLead,
	nodes.FnPercentRank,
	nodes.FnCumeDist,
	nodes.FnAny,
	nodes.FnAll,
}

// SnowflakeRules returns the rewrite registry for the reference dialect:
// the generic exclusion plus the restricted-default-frame override.
func SnowflakeRules() *Registry {
	return NewRegistry(
		ExcludeAnalyticFrames(),
		RestrictedDefaultFrame(restrictedKinds...),
	)
}

// PostgresRules returns the rewrite registry for Postgres.
func PostgresRules() *Registry {
	return NewRegistry(ExcludeAnalyticFrames())
}

// MySQLRules returns the rewrite registry for MySQL.
func MySQLRules() *Registry {
	return NewRegistry(ExcludeAnalyticFrames())
}

// SQLiteRules returns the rewrite registry for SQLite.
func SQLiteRules() *Registry {
	return NewRegistry(ExcludeAnalyticFrames())
}
