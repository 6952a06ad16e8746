package io

import (
	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// Document is the serialized form of a partition shared by the JSON and YAML
// formats.
type Document struct {
	Modules []Module `json:"modules" yaml:"modules"`
}

// Module is one module of a [Document]. Parent is nil for the root.
type Module struct {
	ID       int      `json:"id" yaml:"id"`
	Parent   *int     `json:"parent,omitempty" yaml:"parent,omitempty"`
	Elements []string `json:"elements" yaml:"elements,flow"`
}

// FromPartition converts p into a document. Module identifiers are those of p.
func FromPartition(p *hierpart.Partition[string]) Document {
	doc := Document{Modules: make([]Module, 0, p.Len())}
	for id, elems := range p.Show() {
		m := Module{ID: int(id), Elements: elems}
		if parent := p.Parent(id); parent != hierpart.NoModule {
			pid := int(parent)
			m.Parent = &pid
		}
		doc.Modules = append(doc.Modules, m)
	}
	return doc
}

// Partition rebuilds the hierarchy described by d.
//
// Partition returns an INVALID_FORMAT error if there is not exactly one root,
// if an identifier repeats or if a parent is listed after its child.
// Hierarchy violations are reported with the error of
// [hierpart.Partition.AddChild].
func (d Document) Partition() (*hierpart.Partition[string], error) {
	var root *Module
	for i := range d.Modules {
		if d.Modules[i].Parent != nil {
			continue
		}
		if root != nil {
			return nil, herrors.New(herrors.ErrCodeInvalidFormat,
				"modules %d and %d both have no parent", root.ID, d.Modules[i].ID)
		}
		root = &d.Modules[i]
	}
	if root == nil {
		return nil, herrors.New(herrors.ErrCodeInvalidFormat, "no root module")
	}

	p, err := hierpart.New(root.Elements)
	if err != nil {
		return nil, err
	}
	ids := map[int]hierpart.ModuleID{root.ID: p.Root()}
	for _, m := range d.Modules {
		if m.Parent == nil {
			continue
		}
		if _, dup := ids[m.ID]; dup {
			return nil, herrors.New(herrors.ErrCodeInvalidFormat, "module id %d listed twice", m.ID)
		}
		parent, ok := ids[*m.Parent]
		if !ok {
			return nil, herrors.New(herrors.ErrCodeInvalidFormat,
				"module %d: parent %d is not listed before it", m.ID, *m.Parent)
		}
		id, err := p.AddChild(parent, m.Elements)
		if err != nil {
			return nil, herrors.Wrap(herrors.GetCode(err), err, "module %d", m.ID)
		}
		ids[m.ID] = id
	}
	return p, nil
}
