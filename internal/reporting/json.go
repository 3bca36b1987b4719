package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
)

// WriteJSON dumps the full run record, indented, to <outDir>/<runID>.json
// and returns the written path.
func WriteJSON(runID, outDir string, run *model.Run) (string, error) {
	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, runID+".json")
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
