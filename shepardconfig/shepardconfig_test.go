package shepardconfig

import (
	"strings"
	"testing"
)

func TestLoadOverridesRecognizedFields(t *testing.T) {
	input := `{
		"output_fn": "out.json",
		"num_neighbors": 50,
		"reverse_search": true,
		"idw_power": 3.5,
		"json_indent": 2
	}`

	cfg, err := Load(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFn != "out.json" {
		t.Errorf("OutputFn = %q, want out.json", cfg.OutputFn)
	}
	if cfg.NumNeighbors != 50 {
		t.Errorf("NumNeighbors = %d, want 50", cfg.NumNeighbors)
	}
	if !cfg.ReverseSearch {
		t.Error("ReverseSearch = false, want true")
	}
	if cfg.IdwPower != 3.5 {
		t.Errorf("IdwPower = %v, want 3.5", cfg.IdwPower)
	}
	if cfg.JSONIndent != 2 {
		t.Errorf("JSONIndent = %d, want 2", cfg.JSONIndent)
	}
}

func TestLoadMissingKeysKeepDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"output_fn": "out.json"}`), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.NumNeighbors != want.NumNeighbors {
		t.Errorf("NumNeighbors = %d, want default %d", cfg.NumNeighbors, want.NumNeighbors)
	}
	if cfg.IdwPower != want.IdwPower {
		t.Errorf("IdwPower = %v, want default %v", cfg.IdwPower, want.IdwPower)
	}
}

func TestLoadTypeMismatchKeepsDefault(t *testing.T) {
	input := `{"num_neighbors": "fifty", "idw_power": true}`
	cfg, err := Load(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.NumNeighbors != want.NumNeighbors {
		t.Errorf("NumNeighbors = %d, want default %d after type mismatch", cfg.NumNeighbors, want.NumNeighbors)
	}
	if cfg.IdwPower != want.IdwPower {
		t.Errorf("IdwPower = %v, want default %v after type mismatch", cfg.IdwPower, want.IdwPower)
	}
}

func TestLoadEmptyStringFilenameKeepsDefault(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"output_fn": ""}`), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFn != Default().OutputFn {
		t.Errorf("OutputFn = %q, want default %q for an empty override", cfg.OutputFn, Default().OutputFn)
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"not_a_real_field": 123}`), Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Config changed despite only an unknown key being present: %+v", cfg)
	}
}

func TestLoadEmptyObjectIsMalformed(t *testing.T) {
	_, err := Load(strings.NewReader(`{}`), Default())
	if err == nil {
		t.Error("expected an error for an empty config object")
	}
}

func TestLoadFileMissingKeepsBaseAndRecordsConfigFn(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/path/config.json", Default())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ConfigFn != "/nonexistent/path/config.json" {
		t.Errorf("ConfigFn = %q, want the requested path even on a failed open", cfg.ConfigFn)
	}
	if cfg.NumNeighbors != Default().NumNeighbors {
		t.Errorf("NumNeighbors changed despite a failed open")
	}
}
