// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package settings holds named, typed parameters with default values, and parses user settings
// given as a string like "param1=value1;param2=value2;...".
//
// The default value of a parameter also defines its type: a setting for a parameter that was not
// given a default is an error, and so is a value that can't be parsed to the default's type.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gomlx/boltzmann/pkg/support/fsutil"
	"github.com/gomlx/boltzmann/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Params is an ordered set of named parameters. The zero value is not usable, create it with New.
type Params struct {
	names  []string
	values map[string]any
}

// New creates an empty set of parameters.
func New() *Params {
	return &Params{values: make(map[string]any)}
}

// Set the value of a parameter, creating it if it doesn't exist yet.
// It returns the Params itself, so calls can be chained.
func (p *Params) Set(name string, value any) *Params {
	if _, found := p.values[name]; !found {
		p.names = append(p.names, name)
	}
	p.values[name] = value
	return p
}

// Get returns the value of the parameter and whether it exists.
func (p *Params) Get(name string) (value any, found bool) {
	value, found = p.values[name]
	return
}

// Names of the parameters, in the order they were first set.
func (p *Params) Names() []string {
	return xslices.Copy(p.names)
}

// Enumerate calls fn for every parameter, in the order they were first set.
func (p *Params) Enumerate(fn func(name string, value any)) {
	for _, name := range p.names {
		fn(name, p.values[name])
	}
}

// GetOr returns the value of the parameter converted to T, or defaultValue if it is not set or
// has a different type.
func GetOr[T any](p *Params, name string, defaultValue T) T {
	value, found := p.values[name]
	if !found {
		return defaultValue
	}
	t, ok := value.(T)
	if !ok {
		return defaultValue
	}
	return t
}

// Parse settings and update the parameters accordingly.
// The settings are a list separated by ";": e.g.: "param1=value1;param2=value2;...".
//
// All the parameters must have been set with default values beforehand: the default value defines
// the type to which the string value is parsed.
//
// For integer types, "_" is removed: it allows one to enter large numbers using it as a separator, like
// in Go. E.g.: 1_000_000 = 1000000.
//
// An entry "file:<path>" reads the settings from a file, one or more per line, where lines starting with
// "#" are comments.
//
// It returns the names of the parameters set, in order (with repetitions if a parameter was set more than once).
func (p *Params) Parse(settings string) (paramsSet []string, err error) {
	for _, setting := range strings.Split(settings, ";") {
		paramsSet, err = p.parseSetting(setting, paramsSet)
		if err != nil {
			return
		}
	}
	return
}

func (p *Params) parseSetting(setting string, paramsSet []string) (newParamsSet []string, err error) {
	newParamsSet = paramsSet
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return
	}
	if strings.HasPrefix(setting, "file:") {
		var filePath string
		filePath, err = fsutil.ReplaceTildeInPath(strings.TrimPrefix(setting, "file:"))
		if err != nil {
			return
		}
		var contents []byte
		contents, err = os.ReadFile(filePath)
		if err != nil {
			err = errors.Wrapf(err, "failed to read settings from file %q", filePath)
			return
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			for _, lineSetting := range strings.Split(line, ";") {
				newParamsSet, err = p.parseSetting(lineSetting, newParamsSet)
				if err != nil {
					return
				}
			}
		}
		return
	}

	parts := strings.Split(setting, "=")
	if len(parts) != 2 {
		err = errors.Errorf("can't parse setting %q: each setting requires the format \"<param>=<value>\"", setting)
		return
	}
	name, valueStr := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	value, found := p.values[name]
	if !found {
		err = errors.Errorf("can't set parameter %q because it is not known, valid parameters are %q", name, p.names)
		return
	}

	switch v := value.(type) {
	case int:
		valueStr = strings.ReplaceAll(valueStr, "_", "")
		err = json.Unmarshal([]byte(valueStr), &v)
		value = v
	case int64:
		valueStr = strings.ReplaceAll(valueStr, "_", "")
		err = json.Unmarshal([]byte(valueStr), &v)
		value = v
	case float64:
		err = json.Unmarshal([]byte(valueStr), &v)
		value = v
	case bool:
		err = json.Unmarshal([]byte(valueStr), &v)
		value = v
	case string:
		value = valueStr
	case []float64:
		parts := strings.Split(valueStr, ",")
		value = xslices.Map(parts, func(str string) float64 {
			var asNum float64
			if newErr := json.Unmarshal([]byte(strings.TrimSpace(str)), &asNum); newErr != nil {
				err = newErr
			}
			return asNum
		})
	default:
		err = fmt.Errorf("don't know how to parse type %T for setting parameter %q", value, setting)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse value %q for parameter %q (default value is %#v)", valueStr, name, p.values[name])
		return
	}
	p.values[name] = value
	newParamsSet = append(newParamsSet, name)
	return
}

// String pretty-prints all parameters, one per line.
func (p *Params) String() string {
	parts := make([]string, 0, len(p.names))
	p.Enumerate(func(name string, value any) {
		parts = append(parts, fmt.Sprintf("\t%q: (%T) %v", name, value, value))
	})
	return strings.Join(parts, "\n")
}
