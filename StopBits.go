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

// StopBits determines how many stop bits terminate each transmitted byte.
type StopBits int

const (
	// StopBitsOne defines that one stop bit is used.
	StopBitsOne StopBits = iota
	// StopBitsOnePointFive defines that 1.5 stop bits are used.
	StopBitsOnePointFive
	// StopBitsTwo defines that two stop bits are used.
	StopBitsTwo
)

// StopBitsParse converts the given string into a StopBits value.
//
// It returns the corresponding StopBits constant if the string matches
// a known name, or an error if the input is invalid.
func StopBitsParse(value string) (StopBits, error) {
	var ret StopBits
	var err error
	switch strings.ToUpper(value) {
	case "ONE", "1":
		ret = StopBitsOne
	case "ONEPOINTFIVE", "1.5":
		ret = StopBitsOnePointFive
	case "TWO", "2":
		ret = StopBitsTwo
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the stop bit setting.
// It satisfies fmt.Stringer.
func (g StopBits) String() string {
	var ret string
	switch g {
	case StopBitsOne:
		ret = "One"
	case StopBitsOnePointFive:
		ret = "OnePointFive"
	case StopBitsTwo:
		ret = "Two"
	}
	return ret
}
