package gxwebserial

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"fmt"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// Parity determines which parity scheme the serial port uses.
type Parity int

const (
	// ParityNone defines that no parity bit is used.
	ParityNone Parity = iota
	// ParityOdd defines that an odd parity bit is used.
	ParityOdd
	// ParityEven defines that an even parity bit is used.
	ParityEven
	// ParityMark defines that the parity bit is always set.
	ParityMark
	// ParitySpace defines that the parity bit is always cleared.
	ParitySpace
)

// ParityParse converts the given string into a Parity value.
//
// It returns the corresponding Parity constant if the string matches
// a known name, or an error if the input is invalid.
func ParityParse(value string) (Parity, error) {
	var ret Parity
	var err error
	switch strings.ToUpper(value) {
	case "NONE":
		ret = ParityNone
	case "ODD":
		ret = ParityOdd
	case "EVEN":
		ret = ParityEven
	case "MARK":
		ret = ParityMark
	case "SPACE":
		ret = ParitySpace
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the parity scheme.
// It satisfies fmt.Stringer.
func (g Parity) String() string {
	var ret string
	switch g {
	case ParityNone:
		ret = "None"
	case ParityOdd:
		ret = "Odd"
	case ParityEven:
		ret = "Even"
	case ParityMark:
		ret = "Mark"
	case ParitySpace:
		ret = "Space"
	}
	return ret
}
