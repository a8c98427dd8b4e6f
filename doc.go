// Package gxwebserial provides serial port based media for Gurux components
// over a Web Serial style port: a device exposing an openable handle, an
// exclusively locked readable stream and an exclusively locked writable
// stream. It implements the common IGXMedia-style contract: open/close a
// connection, send/receive data (optionally framed by an EOP marker), and
// emit events for received data, errors, tracing and state changes. In
// addition it exposes a push-based transport contract: a Protocol attached
// to the media is handed every received chunk and is notified exactly once
// when the connection is made and when it is lost.
//
// Features
//
//   - Ports: any SerialPort implementation; a POSIX tty port is included.
//   - Configurable serial settings (baud rate, flow control; data bits,
//     parity and stop bits accepted for compatibility).
//   - Push receive through a Protocol, or synchronous request/response
//     through Receive.
//   - Ordering: outbound chunks are flushed strictly in submission order and
//     inbound chunks are delivered strictly in arrival order.
//   - Shutdown: exactly-once teardown from explicit Close, a write failure,
//     a read failure or the device signaling end-of-stream; the port is
//     fully closed before ConnectionLost fires.
//   - Serialized opens: a ConnectionManager waits for every in-flight close
//     of a previous connection before a new port open, so at most one port
//     is opening or open at a time.
//   - Tracing: configurable trace level/mask for sent/received/error/info.
//   - Events: Received, Error, Trace and MediaState callbacks.
//
// # Construction
//
// Use a ConnectionManager for the full lifecycle:
//
//	manager := gxwebserial.NewConnectionManager(logger)
//	manager.SetPort(gxwebserial.NewTTYPort("/dev/ttyUSB0"))
//
//	media, protocol, err := manager.CreateConnection(ctx, newMyProtocol,
//	    gxwebserial.ConnectionOptions{BaudRate: gxwebserial.BaudRate115200})
//	if err != nil {
//	    // handle open error
//	}
//	media.Write([]byte{0x01, 0x02, 0x03})
//	media.Close()
//
// or construct the media directly with NewGXWebSerial and call Open. A media
// cannot be reopened after it has closed; create a new connection instead.
// Reconnection policy is the caller's responsibility.
//
// # Writes
//
// Write never blocks: chunks are queued without bound and flushed by a
// background pump. There is no backpressure signal; callers that need flow
// control must pace themselves.
//
// # Errors and shutdown
//
// Pump errors never escape: a read or write failure shuts the media down and
// the Protocol learns of it once, through ConnectionLost. End-of-stream from
// the device surfaces as ErrPeerClosed. A media reclaimed without Close is
// still shut down, with ErrNotClosed as the reason and a diagnostic warning;
// treat that as a caller bug. Error messages are lowercased per Go style
// guidelines.
//
// # Notes
//
// The zero value of GXWebSerial is not ready for use; always construct via
// NewGXWebSerial or a ConnectionManager. Long-running work in event handlers
// should be offloaded to a separate goroutine to avoid blocking I/O paths.
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
