package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Reset()
	t.Setenv("HOME", dir)
	t.Cleanup(func() {
		viper.Reset()
	})
	return dir
}

func TestLoadDefaults(t *testing.T) {
	setupTestConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sheet != "Sheet1" {
		t.Errorf("default sheet = %q", cfg.Sheet)
	}
	if cfg.OutputSheet != "FilteredData" {
		t.Errorf("default output sheet = %q", cfg.OutputSheet)
	}
	if cfg.Filter.Column != "Truck" {
		t.Errorf("default filter column = %q", cfg.Filter.Column)
	}
	want := []string{"Rate", "Gross Pay", "Total"}
	if len(cfg.Summary.Columns) != len(want) {
		t.Fatalf("default summary columns = %v", cfg.Summary.Columns)
	}
	for i, col := range want {
		if cfg.Summary.Columns[i] != col {
			t.Errorf("summary column %d = %q, want %q", i, cfg.Summary.Columns[i], col)
		}
	}
	if cfg.Summary.LabelPrefix != "Total for " {
		t.Errorf("default label prefix = %q", cfg.Summary.LabelPrefix)
	}
}

func TestEnvOverride(t *testing.T) {
	setupTestConfig(t)
	t.Setenv("HAULKIT_SHEET", "Payroll")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sheet != "Payroll" {
		t.Errorf("sheet = %q, want env override %q", cfg.Sheet, "Payroll")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := setupTestConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Filter.Column = "Driver"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".haulkit", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Driver") {
		t.Errorf("saved config missing value:\n%s", data)
	}

	viper.Reset()
	reloaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Filter.Column != "Driver" {
		t.Errorf("reloaded filter column = %q", reloaded.Filter.Column)
	}
}

func TestSet(t *testing.T) {
	setupTestConfig(t)

	if _, err := Load(); err != nil {
		t.Fatal(err)
	}
	if err := Set("sheet", "Weekly"); err != nil {
		t.Fatal(err)
	}

	viper.Reset()
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sheet != "Weekly" {
		t.Errorf("sheet = %q after Set", cfg.Sheet)
	}
}

func TestPath(t *testing.T) {
	setupTestConfig(t)

	path := Path()
	if !strings.Contains(path, ".haulkit") || !strings.HasSuffix(path, "config.yaml") {
		t.Errorf("unexpected path: %q", path)
	}
}
