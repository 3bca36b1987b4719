// Package bugrank parses a FindBugs bugrank.txt file into a map from bug
// pattern key to Sonar priority label.
package bugrank

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

// One record per line: an optional signed rank, a kind marker we discard,
// then the key spanning to end of line. Anything else (comments, blanks)
// is skipped without complaint.
var lineRE = regexp.MustCompile(`^([+-]?\d*) [^ ]* (.*)$`)

// Sonar priority labels, lowest to highest severity.
const (
	PriorityInfo     = "INFO"
	PriorityMinor    = "MINOR"
	PriorityMajor    = "MAJOR"
	PriorityCritical = "CRITICAL"
	PriorityBlocker  = "BLOCKER"
)

// Table maps a bug pattern key to its priority label. Built once by Parse
// and read-only afterward.
type Table map[string]string

// PriorityResolver turns a matched rank token into a priority label. It is
// the seam for the real FindBugs rank resolution (global adjustment ranker,
// per-plugin rankers, relative/absolute rank accumulation, searched in a
// defined precedence order). That algorithm is intentionally not implemented
// here: the shipped resolver maps every matched line to the same label.
type PriorityResolver interface {
	Resolve(rank string) (priority string, ok bool)
}

type fixedResolver struct{}

func (fixedResolver) Resolve(string) (string, bool) { return PriorityMinor, true }

// FixedResolver resolves every rank to MINOR.
func FixedResolver() PriorityResolver { return fixedResolver{} }

// Parse builds the table from the decoded text of a bugrank file using the
// default resolver. Later lines win over earlier ones for the same key.
func Parse(r io.Reader) (Table, error) {
	return ParseWith(r, FixedResolver())
}

// ParseWith is Parse with an explicit resolver.
func ParseWith(r io.Reader, resolver PriorityResolver) (Table, error) {
	t := Table{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := lineRE.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if priority, ok := resolver.Resolve(m[1]); ok {
			t[m[2]] = priority
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read bugrank: %w", err)
	}
	return t, nil
}
