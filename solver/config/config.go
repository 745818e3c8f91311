// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the solver's ambient settings: logging and the
// tunables exposed on Solver (callee cap, abstraction path length,
// worker count, unbalanced-return following). None of it is specific to any one
// analysis problem.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxCalleesPerCallSite is the default cap on how many concrete
// callees a single call site may explore before the solver falls back to
// call-to-return flow only and logs the site as skipped.
const DefaultMaxCalleesPerCallSite = 75

// DefaultMaxAbstractionPathLength is the default cap on how long a fact's
// derivation chain may grow before propagate drops it. Negative disables
// the cap.
const DefaultMaxAbstractionPathLength = 100

var configFile string

// SetGlobalConfig sets the global config filename used by LoadGlobal.
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file set by SetGlobalConfig.
func LoadGlobal() (*Options, error) {
	return Load(configFile)
}

// Options holds every setting a Solver can be configured with. Fields not
// present in a loaded YAML file keep their DefaultOptions value.
type Options struct {
	// MaxCalleesPerCallSite caps callee exploration per call site. Negative
	// disables the cap.
	MaxCalleesPerCallSite int `yaml:"max-callees-per-call-site"`

	// MaxAbstractionPathLength caps how long a fact's derivation chain may
	// grow. Negative disables the cap.
	MaxAbstractionPathLength int `yaml:"max-abstraction-path-length"`

	// MaxJoinPointAbstractions is reserved for a future join-point
	// abstraction cap; the solver accepts and stores it but does not yet
	// enforce it.
	MaxJoinPointAbstractions int `yaml:"max-join-point-abstractions"`

	// FollowReturnsPastSeeds enables unbalanced-return propagation past the
	// zero fact's seed (see Design Notes on soundness vs. precision).
	FollowReturnsPastSeeds bool `yaml:"follow-returns-past-seeds"`

	// Workers bounds how many edges the solver processes concurrently. Zero
	// or negative means runtime.NumCPU()-1 (minimum 1).
	Workers int `yaml:"workers"`

	// LogLevel is one of ErrLevel..TraceLevel.
	LogLevel int `yaml:"log-level"`
}

// DefaultOptions returns the settings the solver uses absent any loaded
// configuration file.
func DefaultOptions() *Options {
	return &Options{
		MaxCalleesPerCallSite:    DefaultMaxCalleesPerCallSite,
		MaxAbstractionPathLength: DefaultMaxAbstractionPathLength,
		MaxJoinPointAbstractions: -1,
		FollowReturnsPastSeeds:   false,
		Workers:                  0,
		LogLevel:                 int(InfoLevel),
	}
}

// Load reads Options from a YAML file, filling in DefaultOptions for
// anything the file leaves unset.
func Load(filename string) (*Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, opts); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = int(InfoLevel)
	}
	if opts.MaxCalleesPerCallSite == 0 {
		opts.MaxCalleesPerCallSite = DefaultMaxCalleesPerCallSite
	}
	if opts.MaxAbstractionPathLength == 0 {
		opts.MaxAbstractionPathLength = DefaultMaxAbstractionPathLength
	}
	return opts, nil
}
