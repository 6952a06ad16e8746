package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// Format names a serialization format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPaths Format = "paths"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatPaths}

var extensions = map[string]Format{
	".json":  FormatJSON,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".txt":   FormatPaths,
	".hp":    FormatPaths,
	".paths": FormatPaths,
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatPaths:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", herrors.New(herrors.ErrCodeUnsupported, "unknown format %q (want json, yaml or paths)", s)
}

// DetectFormat picks the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", herrors.New(herrors.ErrCodeUnsupported, "cannot infer format of %s", path)
}

// Read decodes a partition in format f from r.
func Read(r io.Reader, f Format) (*hierpart.Partition[string], error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatPaths:
		return ReadPaths(r)
	}
	return nil, herrors.New(herrors.ErrCodeUnsupported, "unknown format %q", f)
}

// Write encodes p in format f to w.
func Write(p *hierpart.Partition[string], w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(p, w)
	case FormatYAML:
		return WriteYAML(p, w)
	case FormatPaths:
		return WritePaths(p, w)
	}
	return herrors.New(herrors.ErrCodeUnsupported, "unknown format %q", f)
}

// Import reads the partition stored at path, inferring the format from its
// extension. A missing file yields a FILE_NOT_FOUND error.
func Import(path string) (*hierpart.Partition[string], error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return ImportAs(path, f)
}

// ImportAs reads the partition stored at path in format f.
func ImportAs(path string, f Format) (*hierpart.Partition[string], error) {
	if err := herrors.ValidatePath(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, herrors.Wrap(herrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	p, err := Read(file, f)
	if err != nil {
		return nil, herrors.Wrap(herrors.GetCode(err), err, "%s", path)
	}
	return p, nil
}

// Export writes p to path, inferring the format from its extension.
func Export(p *hierpart.Partition[string], path string) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	return ExportAs(p, path, f)
}

// ExportAs writes p to path in format f. The file is only created once the
// format is known to be supported.
func ExportAs(p *hierpart.Partition[string], path string, f Format) error {
	if err := herrors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return herrors.Wrap(herrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(p, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
