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

// Protocol is the push-based consumer a GXWebSerial media feeds. The media
// calls ConnectionMade once after it has opened, DataReceived for every
// inbound chunk in arrival order, and ConnectionLost exactly once when the
// media shuts down.
//
// ConnectionLost receives nil after a clean local Close, ErrPeerClosed when
// the device signaled end-of-stream, the device error after a read or write
// failure, and ErrNotClosed when the media was reclaimed without Close.
// The device is fully closed by the time ConnectionLost fires, so the
// callback may safely open a new connection.
type Protocol interface {
	ConnectionMade(media *GXWebSerial)
	DataReceived(data []byte)
	ConnectionLost(err error)
}

// ProtocolFactory builds the protocol instance for a new connection.
type ProtocolFactory func() Protocol
