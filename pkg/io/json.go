package io

import (
	"encoding/json"
	"io"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// ReadJSON decodes a JSON [Document] from r and rebuilds the partition.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*hierpart.Partition[string], error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "decode json")
	}
	return doc.Partition()
}

// WriteJSON encodes p as an indented JSON [Document].
func WriteJSON(p *hierpart.Partition[string], w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromPartition(p)); err != nil {
		return herrors.Wrap(herrors.ErrCodeInternal, err, "encode json")
	}
	return nil
}
