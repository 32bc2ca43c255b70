// Package report writes an Environment's Results aggregate to disk: JSON
// for machine consumption, CSV for a flat per-worker summary.
package report

import (
	"fmt"
	"os"

	"github.com/tidwall/sjson"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

// WriteJSON serializes results to path, building the document incrementally
// with sjson rather than a single json.Marshal call, so one session's
// unmarshalable result value can't abort the whole write.
func WriteJSON(path string, results engine.Results) error {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "environment", results.Environment)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "start_ms", results.StartMS)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "end_ms", results.EndMS)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, "duration_ms", results.DurationMS)
	if err != nil {
		return err
	}

	for name, outcomes := range results.Sessions {
		for i, o := range outcomes {
			prefix := fmt.Sprintf("sessions.%s.%d", name, i)
			doc, err = sjson.Set(doc, prefix+".session_id", o.SessionID)
			if err != nil {
				return err
			}
			doc, err = sjson.Set(doc, prefix+".results", o.Results)
			if err != nil {
				return err
			}
			doc, err = sjson.Set(doc, prefix+".metrics", o.Metrics)
			if err != nil {
				return err
			}
			doc, err = sjson.Set(doc, prefix+".errors", o.Errors)
			if err != nil {
				return err
			}
			if o.Err != "" {
				doc, err = sjson.Set(doc, prefix+".err", o.Err)
				if err != nil {
					return err
				}
			}
		}
	}

	return os.WriteFile(path, []byte(doc), 0o644)
}
