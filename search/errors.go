package search

import "fmt"

// IndexingError reports a document that could not be added: empty content,
// missing id, or an id that is already indexed. Batch callers should log
// and continue with the next document.
type IndexingError struct {
	DocumentID string
	Reason     string
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing document %q: %s", e.DocumentID, e.Reason)
}

// InvalidQueryError reports an empty or whitespace-only query. The engine
// never treats an empty query as match-all; callers are expected to
// pre-validate and prompt the user.
type InvalidQueryError struct {
	Query string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query %q: query must contain search terms", e.Query)
}

// InvalidArgumentError reports an out-of-range argument such as a
// non-positive result limit or an unknown search type.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// StrategyExecutionError wraps a failure inside a single strategy. It is
// caught at the strategy boundary and counted as zero results from that
// strategy, so one brittle strategy (typically boolean query parsing)
// cannot fail the overall search.
type StrategyExecutionError struct {
	Strategy SearchType
	Err      error
}

func (e *StrategyExecutionError) Error() string {
	return fmt.Sprintf("%s strategy failed: %v", e.Strategy, e.Err)
}

func (e *StrategyExecutionError) Unwrap() error {
	return e.Err
}
