package io

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

const rootPath = "-"

// WritePaths writes p in the paths format, modules in depth-first order.
// Every element is listed once, on the line of the deepest module holding
// it. Returns an INVALID_ELEMENT error if an element cannot be written.
func WritePaths(p *hierpart.Partition[string], w io.Writer) error {
	bw := bufio.NewWriter(w)

	type frame struct {
		id   hierpart.ModuleID
		path []string
	}
	stack := []frame{{id: p.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var own []string
		for _, e := range p.Elements(f.id) {
			if _, claimed := p.ChildOf(f.id, e); claimed {
				continue
			}
			if err := herrors.ValidateElement(e); err != nil {
				return err
			}
			own = append(own, `"`+e+`"`)
		}
		if len(own) > 0 {
			path := rootPath
			if len(f.path) > 0 {
				path = strings.Join(f.path, ",")
			}
			if _, err := fmt.Fprintf(bw, "%s %s\n", path, strings.Join(own, ",")); err != nil {
				return err
			}
		}

		children := p.Children(f.id)
		for i := len(children) - 1; i >= 0; i-- {
			path := append(slices.Clone(f.path), strconv.Itoa(i))
			stack = append(stack, frame{id: children[i], path: path})
		}
	}
	return bw.Flush()
}

type pathNode struct {
	elements []string
	children []*pathNode
	index    map[string]*pathNode
}

func (n *pathNode) child(key string) *pathNode {
	if c, ok := n.index[key]; ok {
		return c
	}
	if n.index == nil {
		n.index = make(map[string]*pathNode)
	}
	c := &pathNode{}
	n.index[key] = c
	n.children = append(n.children, c)
	return c
}

// ReadPaths parses the paths format. Blank lines and lines starting with '#'
// are skipped. Path components are labels: siblings are created in the order
// their label first appears.
func ReadPaths(r io.Reader) (*hierpart.Partition[string], error) {
	root := &pathNode{}
	seen := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, herrors.New(herrors.ErrCodeInvalidFormat,
				"line %d: want <path> <elements>, got %d fields", line, len(fields))
		}
		path, err := parsePath(fields[0])
		if err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		elems, err := parseElements(fields[1])
		if err != nil {
			return nil, herrors.Wrap(herrors.GetCode(err), err, "line %d", line)
		}
		for _, e := range elems {
			if first, dup := seen[e]; dup {
				return nil, herrors.Wrap(herrors.ErrCodeInvalidUniverse, hierpart.ErrInvalidUniverse,
					"line %d: element %q already listed on line %d", line, e, first)
			}
			seen[e] = line
			n := root
			n.elements = append(n.elements, e)
			for _, key := range path {
				n = n.child(key)
				n.elements = append(n.elements, e)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "read paths")
	}

	p, err := hierpart.New(root.elements)
	if err != nil {
		return nil, err
	}
	type pending struct {
		node *pathNode
		id   hierpart.ModuleID
	}
	queue := []pending{{root, p.Root()}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range cur.node.children {
			id, err := p.AddChild(cur.id, c.elements)
			if err != nil {
				return nil, err
			}
			queue = append(queue, pending{c, id})
		}
	}
	return p, nil
}

func parsePath(s string) ([]string, error) {
	if s == rootPath {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return nil, fmt.Errorf("path component %q is not an integer", part)
		}
	}
	return parts, nil
}

func parseElements(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, herrors.New(herrors.ErrCodeInvalidFormat, "elements must be quoted: %s", s)
	}
	elems := strings.Split(s[1:len(s)-1], `","`)
	for _, e := range elems {
		if err := herrors.ValidateElement(e); err != nil {
			return nil, err
		}
	}
	return elems, nil
}
