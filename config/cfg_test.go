package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Document.Page.Width != 11906 || cfg.Document.Page.Height != 16838 {
		t.Errorf("unexpected default page size: %+v", cfg.Document.Page)
	}
	if !cfg.Document.Tables.IncludeNested {
		t.Errorf("nested table conversion must be on by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfigurationOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hdx.yaml")
	data := `
version: 1
document:
  fix_zip: true
  page:
    margin: 720
logging:
  console:
    level: none
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unable to load configuration: %v", err)
	}
	if !cfg.Document.FixZip {
		t.Errorf("fix_zip not picked up from file")
	}
	if cfg.Document.Page.Margin != 720 {
		t.Errorf("page margin = %d, want 720", cfg.Document.Page.Margin)
	}
	// values absent from the file keep template defaults
	if cfg.Document.Page.Width != 11906 {
		t.Errorf("page width = %d, want template default", cfg.Document.Page.Width)
	}
	if cfg.Logging.ConsoleLogger.Level != "none" {
		t.Errorf("console level = %q, want none", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfigurationUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hdx.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nbogus: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Fatalf("unknown configuration field must be rejected")
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("unable to expand configuration template: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("empty configuration template")
	}
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Dump(cfg)
	if err != nil {
		t.Fatalf("unable to dump configuration: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty configuration dump")
	}
}
