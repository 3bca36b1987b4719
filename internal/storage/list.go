package storage

import (
	"time"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
)

// ListRuns returns a lightweight list of runs with rule counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.output_path, r.encoding,
		       (SELECT COUNT(1) FROM rules x WHERE x.run_id = r.id) AS rules
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.OutputPath, &rr.Encoding, &rr.Rules); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		} else {
			rr.StartedAt = time.Time{}
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListRules returns the rules of a run, optionally filtered to one priority
// label, in emission order.
func (db *DB) ListRules(runID, priority string) ([]model.Rule, error) {
	const q = `
		SELECT key, priority, name, description
		  FROM rules
		 WHERE run_id = ?
		   AND (? = '' OR priority = ?)
		 ORDER BY ordinal`
	rows, err := db.conn.Query(q, runID, priority, priority)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rule
	for rows.Next() {
		var r model.Rule
		if err := rows.Scan(&r.Key, &r.Priority, &r.Name, &r.Description); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
