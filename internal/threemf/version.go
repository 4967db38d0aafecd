package threemf

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	VersionMajor = 2
	VersionMinor = 3
	VersionMicro = 2
)

// Version is the version of the bundled library
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionMicro)

type wrapper struct {
	version *semver.Version
}

// LoadLibrary returns the bundled library
func LoadLibrary() (Wrapper, error) {
	return NewLibrary(Version)
}

// NewLibrary returns a library reporting the given version
func NewLibrary(version string) (Wrapper, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("error parsing library version %q: %w", version, err)
	}
	return &wrapper{version: v}, nil
}

func (w *wrapper) GetLibraryVersion() (uint32, uint32, uint32, error) {
	return uint32(w.version.Major()), uint32(w.version.Minor()), uint32(w.version.Patch()), nil
}

func (w *wrapper) CreateModel() (Model, error) {
	return newModel(), nil
}
