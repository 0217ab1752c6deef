// Package rules generates Prometheus recording and alert rule files
// as Kubernetes PrometheusRule custom resources.
package rules

import "fmt"

const (
	apiVersion = "monitoring.coreos.com/v1"
	kind       = "PrometheusRule"

	// selectorLabel is matched by the cluster's Prometheus ruleSelector.
	selectorLabel = "system-rules-prometheus"
)

// Severity levels used on alert rules.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// PrometheusRule is a Kubernetes custom resource for Prometheus Operator.
type PrometheusRule struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata holds the CR metadata fields.
type Metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// Spec holds the rule groups.
type Spec struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named collection of recording or alerting rules.
type Group struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a single recording or alerting rule. Exactly one of Record and
// Alert is set.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Name returns the record or alert name.
func (r Rule) Name() string {
	if r.Record != "" {
		return r.Record
	}
	return r.Alert
}

// Validate checks the structural constraints Prometheus enforces when
// loading the file. Expressions are checked separately.
func (r Rule) Validate() error {
	switch {
	case r.Record == "" && r.Alert == "":
		return fmt.Errorf("rule has neither record nor alert")
	case r.Record != "" && r.Alert != "":
		return fmt.Errorf("rule %q sets both record and alert", r.Record)
	case r.Expr == "":
		return fmt.Errorf("rule %q has no expr", r.Name())
	case r.Record != "" && (r.For != "" || len(r.Annotations) > 0):
		return fmt.Errorf("recording rule %q cannot have for or annotations", r.Record)
	case r.Alert != "" && r.Labels["severity"] == "":
		return fmt.Errorf("alert %q has no severity label", r.Alert)
	}
	return nil
}

// Validate checks every rule and rejects duplicate names within a group.
func (pr PrometheusRule) Validate() error {
	if pr.Metadata.Name == "" {
		return fmt.Errorf("PrometheusRule has no name")
	}
	for _, g := range pr.Spec.Groups {
		seen := make(map[string]bool, len(g.Rules))
		for _, r := range g.Rules {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", g.Name, err)
			}
			// Recording rules may repeat a name with different labels; alerts may not.
			if r.Alert != "" {
				if seen[r.Alert] {
					return fmt.Errorf("%s: duplicate alert %q", g.Name, r.Alert)
				}
				seen[r.Alert] = true
			}
		}
	}
	return nil
}

func newPrometheusRule(name string, groups ...Group) PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: Metadata{
			Name:   name,
			Labels: map[string]string{"prometheus": selectorLabel},
		},
		Spec: Spec{Groups: groups},
	}
}

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
