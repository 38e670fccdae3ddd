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
package polyhedron

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// ReadBasicSet parses a constraint matrix in PolyLib text format: a header
// line "nrows ncols" followed by one line per constraint, each holding the
// equality tag (0 for ==, 1 for >=), the coefficients in column order, and
// finally the constant term.  Lines starting with '#' are comments.  The
// matrix format does not record how many of the trailing columns are
// parameters, so that split is supplied by the caller.
func ReadBasicSet(reader io.Reader, nparam uint) (*BasicSet, error) {
	scanner := bufio.NewScanner(reader)
	// Parse header
	header, err := nextLine(scanner)
	//
	if err != nil {
		return nil, err
	} else if len(header) != 2 {
		return nil, fmt.Errorf("malformed header %q (expected \"nrows ncols\")", strings.Join(header, " "))
	}
	//
	nrows, err1 := strconv.ParseUint(header[0], 10, 32)
	ncols, err2 := strconv.ParseUint(header[1], 10, 32)
	//
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("malformed header %q (expected \"nrows ncols\")", strings.Join(header, " "))
	} else if ncols < 2 || uint(ncols-2) < nparam {
		return nil, fmt.Errorf("matrix has %d columns, too few for %d parameters", ncols, nparam)
	}
	//
	bset := NewBasicSet(uint(ncols-2)-nparam, nparam)
	// Parse rows
	for i := uint64(0); i < nrows; i++ {
		fields, err := nextLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		} else if uint64(len(fields)) != ncols {
			return nil, fmt.Errorf("row %d has %d entries (expected %d)", i+1, len(fields), ncols)
		}
		//
		if err := parseRow(bset, fields); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	// Done
	return bset, nil
}

func parseRow(bset *BasicSet, fields []string) error {
	var tag RowTag
	// Parse equality tag
	switch fields[0] {
	case "0":
		tag = Equality
	case "1":
		tag = Inequality
	default:
		return fmt.Errorf("invalid equality tag %q", fields[0])
	}
	//
	values := make([]big.Int, len(fields)-1)
	//
	for i, field := range fields[1:] {
		if _, ok := values[i].SetString(field, 10); !ok {
			return fmt.Errorf("invalid coefficient %q", field)
		}
	}
	// Append row (coefficients via Add would re-parse, so go direct)
	row := Row{tag, values[:len(values)-1], values[len(values)-1]}
	bset.rows = append(bset.rows, row)
	//
	return nil
}

// nextLine reads the next non-empty, non-comment line and splits it into
// whitespace separated fields.
func nextLine(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		//
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		//
		return strings.Fields(line), nil
	}
	//
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	//
	return nil, io.ErrUnexpectedEOF
}
