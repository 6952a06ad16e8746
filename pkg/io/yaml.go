package io

import (
	"io"

	"gopkg.in/yaml.v3"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// ReadYAML decodes a YAML [Document] from r and rebuilds the partition.
func ReadYAML(r io.Reader) (*hierpart.Partition[string], error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return doc.Partition()
}

// WriteYAML encodes p as a YAML [Document] with element lists in flow style.
func WriteYAML(p *hierpart.Partition[string], w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromPartition(p)); err != nil {
		return herrors.Wrap(herrors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return herrors.Wrap(herrors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}
