package engine

// mergeAsyncChild folds one joined child's results and metrics into the
// parent under name, tagging each value with the child's own key so
// provenance survives the merge: child (key, value) pairs become
// {async, key, value} tuples rather than a raw map overlay. Errors are not
// merged here — Await records the child's terminal
// error directly against awaitErrorKey/h.key.
func mergeAsyncChild(parent *Session, name string, child *Session) {
	for k, v := range child.Results() {
		coalesce(parent.results, name, AsyncTag{Action: k, Value: v})
	}
	for k, v := range child.Metrics() {
		coalesce(parent.metrics, name, AsyncTag{Action: k, Value: v})
	}
}

// MergeSessions combines sibling Sessions spawned under the same scenario
// name into one name -> []results map, keyed by session.Name(), for
// Environment-level aggregation into Results. Result values are copied as
// they are; they are not tagged with the session name.
func MergeSessions(sessions []*Session) map[string][]map[string]any {
	out := make(map[string][]map[string]any)
	for _, s := range sessions {
		out[s.Name()] = append(out[s.Name()], s.Results())
	}
	return out
}
