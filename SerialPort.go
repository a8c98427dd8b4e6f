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

import "context"

// OpenOptions carries the settings passed to SerialPort.Open.
//
// Only BaudRate and FlowControl are interpreted by every port. DataBits,
// Parity and StopBits are carried for interface compatibility with callers
// that configure them; a port may apply or ignore them.
type OpenOptions struct {
	BaudRate    BaudRate
	FlowControl FlowControl
	DataBits    int
	Parity      Parity
	StopBits    StopBits
}

// SerialPort is the device handle a GXWebSerial media drives. It mirrors the
// Web Serial port model: an openable resource exposing one readable and one
// writable stream, each lockable by at most one reader or writer at a time.
//
// Implementations are not provided by the media layer, except for the POSIX
// tty port shipped with this package. The media owns the port exclusively
// while open.
type SerialPort interface {
	// Name returns a human readable identifier, such as a device path.
	Name() string
	// Open claims the hardware resource and applies the given settings.
	Open(ctx context.Context, options OpenOptions) error
	// Readable returns the inbound byte stream.
	Readable() ReadableStream
	// Writable returns the outbound byte stream.
	Writable() WritableStream
	// Close releases the hardware resource. It must not be called while a
	// reader or writer lock is still held.
	Close(ctx context.Context) error
}

// ReadableStream is a single-reader inbound byte stream.
type ReadableStream interface {
	// GetReader locks the stream and returns its reader. A second call
	// before ReleaseLock fails with ErrStreamLocked.
	GetReader() (StreamReader, error)
}

// StreamReader reads chunks from a locked readable stream.
type StreamReader interface {
	// Read blocks until a chunk arrives, the stream ends, or ctx is done.
	// done reports that the producer has closed the stream; value is nil in
	// that case.
	Read(ctx context.Context) (value []byte, done bool, err error)
	// ReleaseLock releases the stream lock. Safe to call more than once.
	ReleaseLock()
}

// WritableStream is a single-writer outbound byte stream.
type WritableStream interface {
	// GetWriter locks the stream and returns its writer. A second call
	// before ReleaseLock fails with ErrStreamLocked.
	GetWriter() (StreamWriter, error)
}

// StreamWriter writes chunks to a locked writable stream.
type StreamWriter interface {
	// Write blocks until the whole chunk is accepted by the device or ctx
	// is done.
	Write(ctx context.Context, p []byte) error
	// ReleaseLock releases the stream lock. Safe to call more than once.
	ReleaseLock()
}
