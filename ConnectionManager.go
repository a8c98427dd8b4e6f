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
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectionOptions carries the serial settings for CreateConnection.
// BaudRate is required. Hardware flow control maps to an explicit on/off on
// the port; DataBits, Parity and StopBits are accepted for interface
// compatibility but the port keeps its defaults for them.
type ConnectionOptions struct {
	BaudRate    BaudRate
	FlowControl FlowControl
	DataBits    int
	Parity      Parity
	StopBits    StopBits
}

// ConnectionManager serializes access to a single serial port: it owns the
// port designated for new connections and tracks every in-flight port close,
// so that at most one port is opening or open at a time and a new open waits
// for the previous close to finish.
//
// A manager is safe for concurrent use. The zero value is not ready for use;
// construct with NewConnectionManager.
type ConnectionManager struct {
	mu      sync.Mutex
	port    SerialPort
	closing map[uuid.UUID]chan struct{}
	logger  *zap.Logger
}

// NewConnectionManager creates a connection manager. A nil logger disables
// the manager's diagnostics.
func NewConnectionManager(logger *zap.Logger) *ConnectionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionManager{
		closing: make(map[uuid.UUID]chan struct{}),
		logger:  logger,
	}
}

// SetPort assigns the port used by subsequent CreateConnection calls. The
// port is not owned by any media until a connection is created on it.
func (m *ConnectionManager) SetPort(port SerialPort) {
	m.mu.Lock()
	m.port = port
	m.mu.Unlock()
}

// Port returns the port assigned for new connections.
func (m *ConnectionManager) Port() SerialPort {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.port
}

// ClosingCount returns the number of port closes still in flight.
func (m *ConnectionManager) ClosingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.closing)
}

// registerClosing records an in-flight port close and returns the function
// that marks it finished. The entry stays in the registry until that
// function runs, regardless of whether the close succeeded.
func (m *ConnectionManager) registerClosing() func() {
	id := uuid.New()
	done := make(chan struct{})
	m.mu.Lock()
	m.closing[id] = done
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.closing, id)
			m.mu.Unlock()
			close(done)
		})
	}
}

// AwaitDrain blocks until no port close is in flight or ctx is done. A
// warning is logged for every close it has to wait for, since it means a
// connection was not closed before a new one was requested.
func (m *ConnectionManager) AwaitDrain(ctx context.Context) error {
	for {
		m.mu.Lock()
		var done chan struct{}
		for _, ch := range m.closing {
			done = ch
			break
		}
		m.mu.Unlock()
		if done == nil {
			return nil
		}
		m.logger.Warn("serial connection was not closed before a new one was opened; waiting before opening a new one")
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// CreateConnection waits for any in-flight close of a previous connection,
// opens the assigned port with the given settings and wraps it in a media
// that feeds the protocol built by factory. The protocol's ConnectionMade
// is scheduled asynchronously, so the callback can safely reference the
// media it is handed.
//
// A port open failure is returned unchanged and leaves no partial media
// behind.
func (m *ConnectionManager) CreateConnection(ctx context.Context, factory ProtocolFactory, options ConnectionOptions) (*GXWebSerial, Protocol, error) {
	if err := m.AwaitDrain(ctx); err != nil {
		return nil, nil, err
	}
	m.mu.Lock()
	port := m.port
	logger := m.logger
	m.mu.Unlock()
	if port == nil {
		return nil, nil, fmt.Errorf("%w", ErrPortNotSet)
	}

	protocol := factory()
	media := NewGXWebSerial(port, options.BaudRate, options.DataBits, options.Parity, options.StopBits)
	media.SetFlowControl(options.FlowControl)
	media.SetLogger(logger)
	media.manager = m
	media.SetProtocol(protocol)
	if err := media.Open(); err != nil {
		return nil, nil, err
	}
	return media, protocol, nil
}

var defaultManager = NewConnectionManager(zap.L())

// DefaultManager returns the process-wide connection manager used by the
// package level SetGlobalSerialPort and CreateConnection helpers.
func DefaultManager() *ConnectionManager {
	return defaultManager
}

// SetGlobalSerialPort assigns the port the package level CreateConnection
// opens.
func SetGlobalSerialPort(port SerialPort) {
	defaultManager.SetPort(port)
}

// CreateConnection creates a connection on the default manager's port.
func CreateConnection(ctx context.Context, factory ProtocolFactory, options ConnectionOptions) (*GXWebSerial, Protocol, error) {
	return defaultManager.CreateConnection(ctx, factory, options)
}
