package managers

import "github.com/maddock/winq/nodes"

// Transformer rewrites a SELECT AST before SQL generation. Implementations
// must treat the input as immutable and return a new core (or the input
// unchanged). The frames.Normalizer is the main production transformer.
type Transformer interface {
	TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error)
}

// treeManager is the shared base for managers. It holds the transformer
// pipeline applied ahead of SQL generation.
type treeManager struct {
	transformers []Transformer
}

// addTransformer appends a transformer to the pipeline.
func (tm *treeManager) addTransformer(t Transformer) {
	tm.transformers = append(tm.transformers, t)
}

// Transformers returns the registered transformer pipeline.
func (tm *treeManager) Transformers() []Transformer {
	return tm.transformers
}

// toSQLParams is a helper that resets a parameterizer (if present), calls
// the provided generate function, and returns SQL + params. When the visitor
// reports a compilation error the SQL is discarded and the error returned.
func toSQLParams(v nodes.Visitor, generate func(nodes.Visitor) (string, error)) (string, []any, error) {
	p, _ := v.(nodes.Parameterizer)
	if p != nil {
		p.Reset()
	}

	sql, err := generate(v)
	if err != nil {
		return "", nil, err
	}

	if r, ok := v.(nodes.ErrorReporter); ok {
		if rerr := r.Err(); rerr != nil {
			return "", nil, rerr
		}
	}

	if p != nil {
		return sql, p.Params(), nil
	}
	return sql, nil, nil
}
