package client

import (
	"github.com/tidwall/gjson"

	"visor/internal/media"
)

// Result is one normalized inference response. Doc is the JSON document as
// returned by the server (synthesized as {"visualization": <base64>} when the
// legacy server answers with a raw image). Visualization holds the decoded
// artifact in the configured representation when the response carried one.
type Result struct {
	Doc           []byte
	Visualization *media.Visualization
}

// Get probes the result document by gjson path.
func (r Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Doc, path)
}

// Prediction is the outcome of one inference call: the bare result when
// exactly one input was submitted, the ordered batch otherwise.
type Prediction struct {
	Single *Result
	Batch  []Result
}

// IsBatch reports whether the prediction holds an ordered batch.
func (p Prediction) IsBatch() bool {
	return p.Single == nil
}

// All returns the results as a slice regardless of arity, in input order.
func (p Prediction) All() []Result {
	if p.Single != nil {
		return []Result{*p.Single}
	}
	return p.Batch
}

// unwrapResults collapses a single-element result sequence to the bare
// element; longer sequences stay an ordered batch. Both protocol builders
// apply this uniformly.
func unwrapResults(results []Result) Prediction {
	if len(results) == 1 {
		return Prediction{Single: &results[0]}
	}
	return Prediction{Batch: results}
}
