// SPDX-FileCopyrightText: © 2025 Nfrastack <code@nfrastack.com>
//
// SPDX-License-Identifier: BSD-3-Clause

package runner

import (
	"snapconfine/pkg/cli"
	"snapconfine/pkg/config"

	"errors"
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// ErrClassicNotAllowed is returned when --classic is requested but disabled in the configuration
var ErrClassicNotAllowed = errors.New("classic confinement is disabled by configuration")

// Plan describes what the confinement stages are asked to launch
type Plan struct {
	SecurityTag string   `yaml:"security-tag"`
	Executable  string   `yaml:"executable"`
	Base        string   `yaml:"base"`
	BaseDefault bool     `yaml:"base-default"`
	Classic     bool     `yaml:"classic"`
	Args        []string `yaml:"args,flow"`
	Command     string   `yaml:"command"`
}

// NewPlan builds a launch plan from parsed arguments and the unconsumed
// remainder of the command line (rest[0] is the program name).
func NewPlan(args *cli.ParsedArgs, rest []string, cfg config.Config) (*Plan, error) {
	if args.IsVersionQuery() {
		return nil, fmt.Errorf("cannot build a launch plan for a version query")
	}
	if args.IsClassicConfinement() && !cfg.AllowClassic {
		return nil, ErrClassicNotAllowed
	}

	plan := &Plan{
		SecurityTag: args.SecurityTag(),
		Executable:  args.Executable(),
		Classic:     args.IsClassicConfinement(),
		Args:        []string{},
	}

	if base, ok := args.BaseSnap(); ok {
		plan.Base = base
	} else {
		plan.Base = cfg.DefaultBase
		plan.BaseDefault = true
	}

	if len(rest) > 1 {
		plan.Args = append(plan.Args, rest[1:]...)
	}

	plan.Command = shellquote.Join(append([]string{plan.Executable}, plan.Args...)...)
	return plan, nil
}

// Mode names the confinement mode of the plan
func (p *Plan) Mode() string {
	if p.Classic {
		return "classic"
	}
	return "strict"
}

// Render writes the plan as a YAML document
func (p *Plan) Render(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("failed to encode launch plan: %w", err)
	}
	return encoder.Close()
}
