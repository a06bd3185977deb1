package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avsim/scenario-extract/types"
)

// Report aggregates the extraction diagnostics: histograms over the
// raw agent type codes (before filtering) and the kept labels, plus the
// count of agents dropped because their type code is outside the
// allow-list.
type Report struct {
	Scenes        int
	RawTypeCounts map[int]int
	LabelCounts   map[types.AgentLabel]int
	DroppedAgents int
}

func NewReport() *Report {
	return &Report{
		RawTypeCounts: make(map[int]int),
		LabelCounts:   make(map[types.AgentLabel]int),
	}
}

// CountAgent records one raw agent and resolves its label. The second
// return is false when the type code is not in the allow-list; such
// agents are dropped by the caller but still counted here.
func (r *Report) CountAgent(typeCode int) (types.AgentLabel, bool) {
	r.RawTypeCounts[typeCode]++
	label, ok := types.TypeCodeToLabel[typeCode]
	if !ok {
		r.DroppedAgents++
		return 0, false
	}
	r.LabelCounts[label]++
	return label, true
}

// Merge folds another report into this one.
func (r *Report) Merge(other *Report) {
	r.Scenes += other.Scenes
	r.DroppedAgents += other.DroppedAgents
	for code, n := range other.RawTypeCounts {
		r.RawTypeCounts[code] += n
	}
	for label, n := range other.LabelCounts {
		r.LabelCounts[label] += n
	}
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenes: %d\n", r.Scenes)
	fmt.Fprintf(&b, "dropped agents: %d\n", r.DroppedAgents)

	codes := make([]int, 0, len(r.RawTypeCounts))
	for code := range r.RawTypeCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	b.WriteString("raw type histogram:\n")
	for _, code := range codes {
		fmt.Fprintf(&b, "  %d: %d\n", code, r.RawTypeCounts[code])
	}

	b.WriteString("label histogram:\n")
	for label := types.AgentLabel(0); label < types.NumAgentLabels; label++ {
		fmt.Fprintf(&b, "  %s: %d\n", label, r.LabelCounts[label])
	}
	return b.String()
}
