package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/go3mfexport/internal/threemf"
)

// Stdout is the output path that writes to standard output
const Stdout = "-"

// Check verifies all preconditions are met
func Check() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"3MF library", checkLibrary},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}

	return nil
}

func checkLibrary() error {
	lib, err := threemf.LoadLibrary()
	if err != nil {
		return fmt.Errorf("cannot load: %w", err)
	}
	major, minor, micro, err := lib.GetLibraryVersion()
	if err != nil {
		return fmt.Errorf("cannot query version: %w", err)
	}
	if major != threemf.VersionMajor {
		return fmt.Errorf("version %d.%d.%d is not compatible with %d.x", major, minor, micro, threemf.VersionMajor)
	}
	return nil
}

// ValidateFiles checks if STL files exist and are readable
func ValidateFiles(paths []string) error {
	for _, filePath := range paths {
		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("cannot access file %s: %w", filePath, err)
		}

		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not a file", filePath)
		}

		if !isSTLFile(filePath) {
			return fmt.Errorf("%s is not an STL file (must end in .stl)", filePath)
		}

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", filePath, err)
		}
		file.Close()
	}

	return nil
}

func isSTLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".stl")
}

// ValidateOutputPath checks if the output path is writable
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	if path == Stdout {
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if !info.IsDir() || (info.Mode()&0200) == 0 {
		return fmt.Errorf("output directory %s is not writable", dir)
	}

	return nil
}
