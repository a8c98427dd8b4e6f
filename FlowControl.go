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

// FlowControl determines how the serial port flow is controlled.
type FlowControl int

const (
	// FlowControlNone defines that the port uses its default flow control.
	FlowControlNone FlowControl = iota
	// FlowControlHardware defines that RTS/CTS hardware flow control is used.
	FlowControlHardware
)

// FlowControlParse converts the given string into a FlowControl value.
//
// It returns the corresponding FlowControl constant if the string matches
// a known name, or an error if the input is invalid.
func FlowControlParse(value string) (FlowControl, error) {
	var ret FlowControl
	var err error
	switch strings.ToUpper(value) {
	case "NONE":
		ret = FlowControlNone
	case "HARDWARE":
		ret = FlowControlHardware
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the flow control mode.
// It satisfies fmt.Stringer.
func (g FlowControl) String() string {
	var ret string
	switch g {
	case FlowControlNone:
		ret = "None"
	case FlowControlHardware:
		ret = "Hardware"
	}
	return ret
}
