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

import "errors"

var (
	// ErrPeerClosed is the connection-lost reason when the device signals
	// end-of-stream: the other side has closed the port.
	ErrPeerClosed = errors.New("other side has closed the connection")

	// ErrNotClosed is the connection-lost reason when a media is reclaimed
	// by the runtime while still open. It indicates a caller bug: the owner
	// failed to call Close.
	ErrNotClosed = errors.New("media was not closed")

	// ErrNoProtocol is returned by GetProtocol after shutdown has cleared
	// the protocol reference.
	ErrNoProtocol = errors.New("protocol is no longer attached")

	// ErrPortNotSet is returned by CreateConnection when no serial port has
	// been assigned to the connection manager.
	ErrPortNotSet = errors.New("no serial port has been assigned")

	// ErrStreamLocked is returned when a second reader or writer tries to
	// acquire a stream that is already locked.
	ErrStreamLocked = errors.New("stream is already locked")
)
