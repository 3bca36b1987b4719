package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
)

func WriteHTML(runID, outDir string, run *model.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Priority tally
	byPriority := map[string]int{}
	for _, r := range run.Rules {
		p := r.Priority
		if p == "" {
			p = "(none)"
		}
		byPriority[p]++
	}
	priorities := make([]string, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Strings(priorities)

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>fbsonar run – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Rules: %d</p>", len(run.Rules))
	fmt.Fprintf(f, "<p class='dim'>Messages: <span class='mono'>%s</span> &nbsp; BugRank: <span class='mono'>%s</span></p>",
		html.EscapeString(run.MessagesPath), html.EscapeString(run.BugRankPath))
	fmt.Fprintf(f, "<p class='dim'>Output: <span class='mono'>%s</span> (%s)</p>",
		html.EscapeString(run.OutputPath), html.EscapeString(run.Encoding))

	// Priority tally
	fmt.Fprint(f, "<h2>Priorities</h2><table><tr><th>Priority</th><th>Rules</th></tr>")
	for _, p := range priorities {
		fmt.Fprintf(f, "<tr><td>%s</td><td>%d</td></tr>", html.EscapeString(p), byPriority[p])
	}
	fmt.Fprint(f, "</table>")

	// Rule table
	fmt.Fprint(f, "<h2>Rules</h2><table><tr><th>Key</th><th>Priority</th><th>Name</th></tr>")
	for _, r := range run.Rules {
		fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(r.Key), html.EscapeString(r.Priority), html.EscapeString(r.Name))
	}
	fmt.Fprint(f, "</table>")

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
