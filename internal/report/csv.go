package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

// WriteCSV writes one row per worker: scenario name, session id, error
// count, and the terminal error (if any). It is a flat summary, not a full
// export of results/metrics — use WriteJSON for that.
func WriteCSV(path string, results engine.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"scenario", "session_id", "error_count", "err"}); err != nil {
		return err
	}

	for name, outcomes := range results.Sessions {
		for _, o := range outcomes {
			row := []string{name, o.SessionID, fmt.Sprintf("%d", len(o.Errors)), o.Err}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
