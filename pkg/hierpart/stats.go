package hierpart

import (
	"github.com/montanaflynn/stats"
)

// Summary holds basic statistics over a list of per-module values.
// Std is the population standard deviation. All fields are zero when
// Count is zero.
type Summary struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Std   float64 `json:"std"`
	Count int     `json:"count"`
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	data := stats.Float64Data(values)
	mean, _ := data.Mean()
	lo, _ := data.Min()
	hi, _ := data.Max()
	std, _ := data.StandardDeviationPopulation()
	return Summary{Mean: mean, Min: lo, Max: hi, Std: std, Count: len(values)}
}

// MaxDepth returns the largest depth of any module; 0 for a lone root.
func (p *Partition[E]) MaxDepth() int {
	d := 0
	for _, m := range p.modules {
		d = max(d, m.depth)
	}
	return d
}

// MaxSize returns the size of the largest module, which is the root.
func (p *Partition[E]) MaxSize() int { return len(p.modules[0].elements) }

// MinSize returns the size of the smallest module.
func (p *Partition[E]) MinSize() int {
	n := len(p.modules[0].elements)
	for _, m := range p.modules {
		n = min(n, len(m.elements))
	}
	return n
}

// DepthStats summarizes the depths of the leaves.
func (p *Partition[E]) DepthStats() Summary {
	var depths []float64
	for _, m := range p.modules {
		if len(m.children) == 0 {
			depths = append(depths, float64(m.depth))
		}
	}
	return summarize(depths)
}

// BranchingFactors returns the number of children of every module in
// identifier order. Leaves are skipped unless includeLeaves is set.
func (p *Partition[E]) BranchingFactors(includeLeaves bool) []int {
	var out []int
	for _, m := range p.modules {
		if len(m.children) == 0 && !includeLeaves {
			continue
		}
		out = append(out, len(m.children))
	}
	return out
}

// BranchingStats summarizes [Partition.BranchingFactors].
func (p *Partition[E]) BranchingStats(includeLeaves bool) Summary {
	bf := p.BranchingFactors(includeLeaves)
	values := make([]float64, len(bf))
	for i, b := range bf {
		values[i] = float64(b)
	}
	return summarize(values)
}

// ChildrenAverageSize returns the average size of the children of module
// id, or 0 for a leaf. When weighted, each child counts in proportion to the
// fraction of the parent it holds, which favours large children.
func (p *Partition[E]) ChildrenAverageSize(id ModuleID, weighted bool) float64 {
	if !p.Has(id) {
		return 0
	}
	m := p.modules[id]
	parent := float64(len(m.elements))
	var sum, norm float64
	for _, c := range m.children {
		size := float64(len(p.modules[c].elements))
		w := 1.0
		if weighted {
			w = size / parent
		}
		sum += w * size
		norm += w
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
