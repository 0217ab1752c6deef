// Command dashgen generates the card-lister Grafana dashboard and Prometheus
// rule files from Go definitions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goosebones/pokemon/tools/dashgen/dashboards"
	"github.com/goosebones/pokemon/tools/dashgen/rules"
	"github.com/goosebones/pokemon/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

// Artifact paths relative to Config.OutputDir.
var (
	dashboardPath = filepath.Join("grafana", "card-lister-overview.json")
	recordingPath = filepath.Join("prometheus", "card-lister-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "card-lister-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	arts, res, err := generate(cfg)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !res.Ok() {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", e)
		}
		return fmt.Errorf("validation failed with %d errors", len(res.Errors))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range arts {
		if err := write(cfg.OutputDir, a); err != nil {
			return err
		}
		fmt.Printf("dashgen: wrote %s\n", filepath.Join(cfg.OutputDir, a.path))
	}
	return nil
}

// generate builds and validates every enabled artifact without touching disk.
func generate(cfg Config) ([]artifact, validate.Result, error) {
	var (
		arts []artifact
		res  validate.Result
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, res, fmt.Errorf("building dashboard: %w", err)
		}
		res.Merge(validate.Dashboard(dash, KnownMetrics))

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, res, fmt.Errorf("marshaling dashboard: %w", err)
		}
		arts = append(arts, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		for _, r := range []struct {
			path string
			cr   rules.PrometheusRule
		}{
			{recordingPath, rules.RecordingRules()},
			{alertsPath, rules.AlertRules()},
		} {
			res.Merge(validateRules(r.cr))

			data, err := yaml.Marshal(r.cr)
			if err != nil {
				return nil, res, fmt.Errorf("marshaling %s: %w", r.cr.Metadata.Name, err)
			}
			arts = append(arts, artifact{path: r.path, data: append([]byte(generatedHeader), data...)})
		}
	}

	return arts, res, nil
}

func validateRules(cr rules.PrometheusRule) validate.Result {
	var res validate.Result
	if err := cr.Validate(); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", cr.Metadata.Name, err))
	}
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			res.Merge(validate.Expr(g.Name+"/"+r.Name(), r.Expr, KnownMetrics))
		}
	}
	return res
}

func write(dir string, a artifact) error {
	path := filepath.Join(dir, a.path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, a.data, 0o644); err != nil { //nolint:gosec // generated config, world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
