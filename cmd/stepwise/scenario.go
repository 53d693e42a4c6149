// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"io"
	"os"
	"strconv"

	"github.com/algoviz/stepwise"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// scenario is the YAML form of a demonstration run, e.g.
//
//	engine: rbtree
//	values: [10, 20, 30]
//	tree: true
//	max_tree_depth: 4
type scenario struct {
	Engine       string `yaml:"engine"`
	Values       []int  `yaml:"values"`
	Tree         bool   `yaml:"tree"`
	MaxTreeDepth int    `yaml:"max_tree_depth"`
}

func loadScenario(path string) (scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return scenario{}, err
	}
	defer f.Close()
	return parseScenario(f)
}

func parseScenario(r io.Reader) (scenario, error) {
	var sc scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && err != io.EOF {
		return scenario{}, errors.Wrap(err, "parsing scenario")
	}
	if sc.MaxTreeDepth < 0 {
		return scenario{}, errors.Newf("invalid max_tree_depth %d", sc.MaxTreeDepth)
	}
	if sc.Engine != "" {
		if _, err := stepwise.ParseKind(sc.Engine); err != nil {
			return scenario{}, err
		}
	}
	return sc, nil
}

func parseValues(args []string) ([]int, error) {
	values := make([]int, 0, len(args))
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", arg)
		}
		values = append(values, v)
	}
	return values, nil
}
