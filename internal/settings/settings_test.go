package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.yaml", "settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			store, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			store.SetValue("exportPdfOpts/paperSize", "Letter")
			store.SetValue("exportPdfOpts/showGrid", true)
			store.SetValue("exportPdfOpts/gridSize", 2.5)
			store.SetValue("exportPdfOpts/whole", 10.0)
			if err := store.Sync(); err != nil {
				t.Fatalf("Sync() error: %v", err)
			}

			reopened, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if got := String(reopened, "exportPdfOpts/paperSize", "A4"); got != "Letter" {
				t.Errorf("Expected Letter, got %s", got)
			}
			if !Bool(reopened, "exportPdfOpts/showGrid", false) {
				t.Error("Expected showGrid true")
			}
			if got := Float(reopened, "exportPdfOpts/gridSize", 0); got != 2.5 {
				t.Errorf("Expected 2.5, got %v", got)
			}
			if got := Float(reopened, "exportPdfOpts/whole", 0); got != 10 {
				t.Errorf("Expected 10, got %v", got)
			}
			if len(reopened.Keys()) != 4 {
				t.Errorf("Expected 4 keys, got %v", reopened.Keys())
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, ok := store.Value("anything"); ok {
		t.Error("Expected empty store")
	}
}

func TestSyncWritesOnlyChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if err := store.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Sync without changes should not create the file")
	}

	store.SetValue("key", "value")
	if err := store.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected settings file, got %v", err)
	}
}

func TestOpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("this is = = not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestTypedFallbacks(t *testing.T) {
	store := &FileStore{values: map[string]any{
		"str":       42,
		"boolStr":   "true",
		"floatStr":  "7.5",
		"int":       4,
		"bad float": "wide",
	}}

	if got := String(store, "str", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback for non-string, got %s", got)
	}
	if !Bool(store, "boolStr", false) {
		t.Error("Expected string true to parse")
	}
	if got := Float(store, "floatStr", 0); got != 7.5 {
		t.Errorf("Expected 7.5, got %v", got)
	}
	if got := Float(store, "int", 0); got != 4 {
		t.Errorf("Expected 4, got %v", got)
	}
	if got := Float(store, "bad float", 1); got != 1 {
		t.Errorf("Expected fallback 1, got %v", got)
	}
	if got := Float(store, "missing", 3); got != 3 {
		t.Errorf("Expected fallback 3, got %v", got)
	}
}
