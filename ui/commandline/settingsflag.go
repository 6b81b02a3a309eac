// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/boltzmann/pkg/support/settings"
)

// CreateSettingsFlag creates a string flag with the given flagName (if empty it will be named
// "set") in the given flag set (flag.CommandLine if nil), with a description of the parameters
// defined in params.
//
// The flag should be created before the call to `flags.Parse()`.
//
// Example usage:
//
//	func main() {
//		params := simulation.DefaultParams()
//		settingsFlag := commandline.CreateSettingsFlag(nil, params, "")
//		flag.Parse()
//		paramsSet, err := params.Parse(*settingsFlag)
//		if err != nil { panic(err) }
//		fmt.Println(commandline.SprintModifiedSettings(params, paramsSet))
//		...
//	}
func CreateSettingsFlag(flags *flag.FlagSet, params *settings.Params, flagName string) *string {
	if flags == nil {
		flags = flag.CommandLine
	}
	if flagName == "" {
		flagName = "set"
	}
	var parts []string
	parts = append(parts,
		`Set simulation parameters. `+
			`It should be a list of elements "param=value" separated by ";". `+
			`It can also be given an entry like: "file:settings_file.txt", in `+
			`which case the file will be read and the settings will be parsed, `+
			`with new-lines working as ";" to separate settings and lines starting with "#" are considered comments. `+
			`Current available parameters that can be set:`)
	params.Enumerate(func(name string, value any) {
		parts = append(parts, fmt.Sprintf("%q: default value is %v", name, value))
	})
	usage := strings.Join(parts, "\n")
	var value string
	flags.StringVar(&value, flagName, "", usage)
	return &value
}

// SprintModifiedSettings pretty-prints the values of the parameters listed in paramsSet, typically
// the ones returned by settings.Params.Parse. Duplicates are listed once.
func SprintModifiedSettings(params *settings.Params, paramsSet []string) string {
	paramsSet = slices.Clone(paramsSet)
	slices.Sort(paramsSet)
	paramsSet = slices.Compact(paramsSet)
	parts := make([]string, 0, len(paramsSet))
	for _, name := range paramsSet {
		value, found := params.Get(name)
		if !found {
			continue
		}
		parts = append(parts, fmt.Sprintf("\t%q: (%T) %v", name, value, value))
	}
	return strings.Join(parts, "\n")
}
