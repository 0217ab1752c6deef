// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and may only reference known metric names.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"
)

// histogramSuffixes are stripped before a selector is looked up, so a
// histogram registered by base name covers its derived series.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends the findings of other.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Metrics parses expr and returns the sorted, deduplicated metric names it
// selects.
func Metrics(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Expr validates a single expression. where identifies it in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	if strings.TrimSpace(expr) == "" {
		res.errorf("%s: empty expression", where)
		return res
	}

	names, err := Metrics(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return res
	}
	for _, name := range names {
		if !isKnown(name, known) {
			res.errorf("%s: unknown metric %q", where, name)
		}
	}
	return res
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// panelJSON is the subset of a Grafana panel needed to find queries. Rows
// carry their children in Panels.
type panelJSON struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Panels  []panelJSON  `json:"panels"`
	Targets []targetJSON `json:"targets"`
}

type targetJSON struct {
	RefID string `json:"refId"`
	Expr  string `json:"expr"`
}

type dashboardJSON struct {
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every query target of a built dashboard. The value is
// walked through its JSON form, the same shape Grafana imports.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}

	var d dashboardJSON
	if err := json.Unmarshal(data, &d); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for _, p := range d.Panels {
		res.Merge(panel(p, known))
	}
	return res
}

func panel(p panelJSON, known map[string]bool) Result {
	var res Result

	if p.Type == "row" {
		for _, child := range p.Panels {
			res.Merge(panel(child, known))
		}
		return res
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", p.Title)
		return res
	}

	refs := make(map[string]bool, len(p.Targets))
	for _, t := range p.Targets {
		if refs[t.RefID] {
			res.errorf("panel %q: duplicate refId %q", p.Title, t.RefID)
		}
		refs[t.RefID] = true
		res.Merge(Expr(fmt.Sprintf("panel %q target %s", p.Title, t.RefID), t.Expr, known))
	}
	return res
}
