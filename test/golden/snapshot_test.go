package golden

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/pipeline"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/shared"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected_rules.xml"

const sampleBugRank = `10 BugPattern NP_ALWAYS_NULL
5 BugPattern RV_RETURN_VALUE_IGNORED
# ranks below here apply to kinds, not patterns
17 BugKind SE
`

const sampleMessages = `<?xml version="1.0" encoding="UTF-8"?>
<MessageCollection>
  <Detector class="edu.umd.cs.findbugs.detect.FindNullDeref">
    <Details>Finds null dereferences</Details>
  </Detector>
  <BugPattern type="NP_ALWAYS_NULL">
    <ShortDescription>Null pointer dereference</ShortDescription>
    <LongDescription>Null pointer dereference of {2} in {1}</LongDescription>
    <Details><![CDATA[<p>A null pointer is dereferenced here.</p>]]></Details>
  </BugPattern>
  <BugCode abbrev="NP">
    <Description>Null pointer problems</Description>
  </BugCode>
  <BugPattern type="RV_RETURN_VALUE_IGNORED">
    <ShortDescription>Return value ignored</ShortDescription>
    <LongDescription>Return value of {2} ignored in {1}</LongDescription>
    <Details><![CDATA[<p>The return value of this call is ignored.</p>]]></Details>
  </BugPattern>
  <BugPattern type="SE_NO_SERIALVERSIONID">
    <ShortDescription>Class is Serializable but has no serialVersionUID</ShortDescription>
    <LongDescription>{0} is Serializable; consider declaring a serialVersionUID</LongDescription>
    <Details><![CDATA[<p>This class implements Serializable.</p>]]></Details>
  </BugPattern>
  <BugCategory category="CORRECTNESS">
    <Description>Correctness</Description>
  </BugCategory>
</MessageCollection>
`

func TestGolden_RulesSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfg := shared.DefaultConfig()
	cfg.Inputs.BugRank = filepath.Join(dir, "bugrank.txt")
	cfg.Inputs.Messages = filepath.Join(dir, "messages.xml")
	cfg.Output.Path = filepath.Join(dir, "rules.xml")

	if err := os.WriteFile(cfg.Inputs.BugRank, []byte(sampleBugRank), 0o644); err != nil {
		t.Fatalf("write bugrank: %v", err)
	}
	if err := os.WriteFile(cfg.Inputs.Messages, []byte(sampleMessages), 0o644); err != nil {
		t.Fatalf("write messages: %v", err)
	}

	run, err := pipeline.Run(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(run.Rules) != 3 {
		t.Fatalf("rules = %d, want 3", len(run.Rules))
	}

	got, err := os.ReadFile(cfg.Output.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_RulesSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.xml")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_RulesSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}
