package llm

import "errors"

// ErrDecisionUnavailable means the external decision call failed or timed
// out. The orchestrator recovers by substituting a default abstention; the
// game continues.
var ErrDecisionUnavailable = errors.New("decision unavailable")
