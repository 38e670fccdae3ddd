// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/consensys/go-polyscan/pkg/clast"
	"github.com/consensys/go-polyscan/pkg/constraint"
	"github.com/consensys/go-polyscan/pkg/polyhedron"
	"github.com/consensys/go-polyscan/pkg/stride"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] matrix_file",
	Short: "report how each loop level of a constraint system is pinned.",
	Long: `Read a constraint system in PolyLib matrix format and report,
	for each loop level, whether its iterator is pinned by a defining
	equality (and how that equality classifies), collapses to a modulo
	guard, or requires an ordinary loop.`,
	Run: func(cmd *cobra.Command, args []string) {
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		nparam := GetUint(cmd, "parameters")
		paramNames := GetStringArray(cmd, "names")
		// Read in constraint matrix
		file, err := os.Open(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		defer file.Close()
		//
		bset, err := polyhedron.ReadBasicSet(file, nparam)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		set := constraint.NewSet(bset)
		names := buildNames(set, paramNames)
		equal := constraint.NewEqualities(set.NumIterators()+1, nparam)
		//
		log.Debugf("read %d constraints over %d iterators, %d parameters",
			set.Len(), set.NumIterators(), set.NumParameters())
		//
		printRule()
		reportLevel(set, equal, names, 1)
		printRule()
	},
}

// reportLevel describes how the given level's iterator is pinned (if at
// all), then recurses into the next level exactly as the generator would.
// Recorded equalities are released on the way back out, so the cache sees
// the same strict stack discipline code generation imposes.
func reportLevel(set *constraint.Set, equal *constraint.Equalities, names *clast.Names, level uint) {
	if level > set.NumIterators() {
		return
	}
	//
	indent := strings.Repeat("  ", int(level-1))
	//
	if eq := set.DefiningEquality(level); eq.HasValue() {
		c := eq.Unwrap()
		release := equal.Record(set, level, c)
		// Clear on the way back out
		defer release()
		//
		log.Debugf("cache holds %d equalities", equal.Populated().Count())
		fmt.Printf("%s%s: pinned by equality (%s)\n",
			indent, clast.VariableExpr(c, level, names), equal.Type(level))
	} else if pair := set.DefiningInequalityPair(level); pair.HasValue() {
		var (
			pr     = pair.Unwrap()
			m      = pr.Lower.Coefficient(level - 1)
			k      = pr.Upper.Constant()
			offset big.Int
		)
		//
		release := equal.Record(set, level, pr.Upper)
		// Clear on the way back out
		defer release()
		// Normalise the guard offset into [0, m)
		offset.Mod(&k, &m)
		//
		guard := stride.New(m, offset)
		defer guard.Release()
		//
		fmt.Printf("%s%s: modulo guard (%s)\n",
			indent, clast.VariableExpr(pr.Upper, level, names), guard)
	} else {
		fmt.Printf("%s%s: ordinary loop\n", indent, names.IteratorAtLevel(level))
	}
	//
	reportLevel(set, equal, names, level+1)
}

// buildNames binds default iterator names (c1, c2, ...) and either the
// user-supplied or default (p1, p2, ...) parameter names.
func buildNames(set *constraint.Set, params []string) *clast.Names {
	iterators := make([]string, set.NumIterators())
	for i := range iterators {
		iterators[i] = fmt.Sprintf("c%d", i+1)
	}
	//
	if len(params) == 0 {
		params = make([]string, set.NumParameters())
		for i := range params {
			params[i] = fmt.Sprintf("p%d", i+1)
		}
	} else if uint(len(params)) != set.NumParameters() {
		fmt.Printf("%d parameter names given for %d parameters\n", len(params), set.NumParameters())
		os.Exit(2)
	}
	//
	return clast.NewNames(iterators, params)
}

func printRule() {
	width := 60
	// Match the terminal when attached to one
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	//
	fmt.Println(strings.Repeat("-", width))
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().UintP("parameters", "p", 0, "number of trailing parameter columns")
	analyzeCmd.Flags().StringSlice("names", nil, "parameter names (defaults to p1, p2, ...)")
}
