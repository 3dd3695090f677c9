package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// #region load-fixture
func TestLoadFixture_Bundled(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "scenarios.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Scenarios) == 0 {
		t.Fatal("expected scenarios in bundled fixture")
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFixture_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected parse error")
	}
}

// #endregion load-fixture

// #region to-scenario
func TestToScenario_DefaultOperation(t *testing.T) {
	fs := FixtureScenario{Name: "counted"}
	fs.Options.FixedCount = 5
	sc, err := fs.ToScenario()
	if err != nil {
		t.Fatalf("ToScenario: %v", err)
	}
	if sc.Operation != OpRange {
		t.Errorf("expected range, got %s", sc.Operation)
	}

	fs = FixtureScenario{Name: "open", Expected: FixtureExpected{Error: "CONFIGURATION"}}
	sc, err = fs.ToScenario()
	if err != nil {
		t.Fatalf("ToScenario: %v", err)
	}
	if sc.Operation != OpConditional {
		t.Errorf("expected conditional, got %s", sc.Operation)
	}
	if sc.Expected.ErrorCode != calcerr.CodeConfiguration {
		t.Errorf("expected CONFIGURATION code, got %q", sc.Expected.ErrorCode)
	}
}

func TestToScenario_UnknownOperation(t *testing.T) {
	fs := FixtureScenario{Name: "x", Operation: "simulate"}
	if _, err := fs.ToScenario(); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

// #endregion to-scenario
