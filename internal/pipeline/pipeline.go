// Package pipeline drives one rules generation: bugrank table first, then
// the message catalog, then one emitted rule per bug pattern in catalog
// order. Strictly linear; the first failure aborts the run.
package pipeline

import (
	"fmt"
	"time"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/bugrank"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/catalog"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/resource"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/rulesxml"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/shared"
)

// Run generates the rules file described by cfg and returns a record of
// what was emitted. The output path is not touched until both inputs have
// parsed successfully.
func Run(cfg shared.Config) (model.Run, error) {
	run := model.Run{
		StartedAt:    time.Now().UTC(),
		Version:      model.Version,
		MessagesPath: cfg.Inputs.Messages,
		BugRankPath:  cfg.Inputs.BugRank,
		OutputPath:   cfg.Output.Path,
		NameSuffix:   cfg.Output.NameSuffix,
	}

	enc, err := rulesxml.LookupEncoding(cfg.Output.Encoding)
	if err != nil {
		return run, err
	}
	run.Encoding = enc.Name

	loader := resource.NewLoader(cfg.Resources.Roots)

	ranks, err := loadRanks(loader, cfg.Inputs.BugRank, enc)
	if err != nil {
		return run, err
	}
	cat, err := loadCatalog(loader, cfg.Inputs.Messages)
	if err != nil {
		return run, err
	}

	w, err := rulesxml.Open(cfg.Output.Path, enc)
	if err != nil {
		return run, err
	}
	for _, bp := range cat.BugPatterns() {
		rule := model.Rule{
			Key:         bp.Type,
			Priority:    ranks[bp.Type],
			Name:        bp.ShortDescription + cfg.Output.NameSuffix,
			Description: bp.Details,
		}
		if err := w.AppendRule(rule.Key, rule.Priority, rule.Name, rule.Description); err != nil {
			_ = w.Close()
			return run, err
		}
		run.Rules = append(run.Rules, rule)
	}
	if err := w.Close(); err != nil {
		return run, err
	}
	return run, nil
}

func loadRanks(loader *resource.Loader, location string, enc rulesxml.Encoding) (bugrank.Table, error) {
	rc, err := loader.Open(location)
	if err != nil {
		return nil, fmt.Errorf("bugrank file: %w", err)
	}
	defer rc.Close()
	t, err := bugrank.Parse(enc.NewReader(rc))
	if err != nil {
		return nil, fmt.Errorf("bugrank file %s: %w", location, err)
	}
	return t, nil
}

func loadCatalog(loader *resource.Loader, location string) (*catalog.Catalog, error) {
	rc, err := loader.Open(location)
	if err != nil {
		return nil, fmt.Errorf("messages file: %w", err)
	}
	defer rc.Close()
	cat, err := catalog.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("messages file %s: %w", location, err)
	}
	return cat, nil
}
