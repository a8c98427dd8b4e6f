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
	"strconv"

	"github.com/Gurux/gxcommon-go"
)

// BaudRate is the serial transfer rate in bits per second. Any positive
// value is accepted; the named constants cover the common rates.
type BaudRate int

const (
	// BaudRate300 defines a transfer rate of 300 bit/s.
	BaudRate300 BaudRate = 300
	// BaudRate1200 defines a transfer rate of 1200 bit/s.
	BaudRate1200 BaudRate = 1200
	// BaudRate2400 defines a transfer rate of 2400 bit/s.
	BaudRate2400 BaudRate = 2400
	// BaudRate4800 defines a transfer rate of 4800 bit/s.
	BaudRate4800 BaudRate = 4800
	// BaudRate9600 defines a transfer rate of 9600 bit/s.
	BaudRate9600 BaudRate = 9600
	// BaudRate19200 defines a transfer rate of 19200 bit/s.
	BaudRate19200 BaudRate = 19200
	// BaudRate38400 defines a transfer rate of 38400 bit/s.
	BaudRate38400 BaudRate = 38400
	// BaudRate57600 defines a transfer rate of 57600 bit/s.
	BaudRate57600 BaudRate = 57600
	// BaudRate115200 defines a transfer rate of 115200 bit/s.
	BaudRate115200 BaudRate = 115200
	// BaudRate230400 defines a transfer rate of 230400 bit/s.
	BaudRate230400 BaudRate = 230400
)

// BaudRateParse converts the given string into a BaudRate value.
//
// It returns an error if the input is not a positive integer.
func BaudRateParse(value string) (BaudRate, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return BaudRate(n), nil
}

// String returns the baud rate in decimal form.
// It satisfies fmt.Stringer.
func (g BaudRate) String() string {
	return strconv.Itoa(int(g))
}
