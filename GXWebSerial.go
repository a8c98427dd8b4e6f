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
	"bytes"
	"context"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gurux/gxcommon-go"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GXWebSerial holds a serial port and the settings used to open it, and
// bridges the port's readable and writable streams to a push-based Protocol.
type GXWebSerial struct {
	baudRate    BaudRate
	dataBits    int
	parity      Parity
	stopBits    StopBits
	flowControl FlowControl

	// Open timeout and per-write timeout.
	timeout time.Duration
	eop     any

	// The trace level specifies which types of trace messages are emitted.
	traceLevel gxcommon.TraceLevel

	mu       sync.RWMutex
	port     SerialPort
	portName string
	protocol Protocol
	manager  *ConnectionManager
	logger   *zap.Logger

	// Stream locks held while open. Both are live or both are released.
	reader StreamReader
	writer StreamWriter

	queue  *writeQueue
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closing   atomic.Bool

	bytesSent     uint64
	bytesReceived uint64

	//Called when the Media state is changed.
	onState gxcommon.MediaStateHandler

	//Called when the new data is received.
	onReceive gxcommon.ReceivedEventHandler

	//Called when the Media is sending or receiving data.
	onTrace gxcommon.TraceEventHandler

	//Called when the Media is sending or receiving data.
	onErr gxcommon.ErrorEventHandler

	//Sync settings.
	synchronous  bool
	receivedSize int
	received     *synchronousMediaBase

	// Printer for localized messages.
	p *message.Printer
}

// NewGXWebSerial creates a GXWebSerial media driving the given port with the
// given serial settings. Parity and stop bits are accepted for interface
// compatibility; only the baud rate and flow control are forwarded when the
// port is opened. The media is not open until Open is called, either
// directly or through a ConnectionManager.
func NewGXWebSerial(port SerialPort, baudRate BaudRate, dataBits int, parity Parity, stopBits StopBits) *GXWebSerial {
	name := ""
	if port != nil {
		name = port.Name()
	}
	g := &GXWebSerial{
		port:     port,
		portName: name,
		baudRate: baudRate,
		dataBits: dataBits,
		parity:   parity,
		stopBits: stopBits,
		timeout:  time.Duration(10000) * time.Millisecond,
		logger:   zap.NewNop(),
	}
	g.Localize(language.AmericanEnglish)
	g.received = newGXSynchronousMediaBase()
	// Guard against the media being reclaimed while still open. The pump
	// goroutines keep an open media reachable, so this fires for a media
	// that was dropped before its pumps started or after shutdown, and is
	// a no-op once closed.
	runtime.SetFinalizer(g, (*GXWebSerial).abandoned)
	return g
}

// String implements IGXMedia
func (g *GXWebSerial) String() string {
	return fmt.Sprintf("%s:%d", g.portName, int(g.baudRate))
}

// GetName implements IGXMedia
func (g *GXWebSerial) GetName() string {
	return g.portName
}

// IsOpen implements IGXMedia
func (g *GXWebSerial) IsOpen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reader != nil
}

// IsClosing returns whether shutdown has been initiated. Once true it never
// reverts to false.
func (g *GXWebSerial) IsClosing() bool {
	return g.closing.Load()
}

// Copy implements IGXMedia
func (g *GXWebSerial) Copy(target gxcommon.IGXMedia) error {
	switch dst := target.(type) {
	case *GXWebSerial:
		dst.baudRate = g.baudRate
		dst.dataBits = g.dataBits
		dst.parity = g.parity
		dst.stopBits = g.stopBits
		dst.flowControl = g.flowControl
		dst.timeout = g.timeout
		dst.traceLevel = g.traceLevel
		dst.eop = g.eop
	default:
		return fmt.Errorf("copy: target is %T; want *GXWebSerial", target)
	}
	return nil
}

// GetMediaType implements IGXMedia
func (g *GXWebSerial) GetMediaType() string {
	return "WebSerial"
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// GetSettings implements IGXMedia
func (g *GXWebSerial) GetSettings() string {
	var b strings.Builder
	if g.portName != "" {
		fmt.Fprintf(&b, "<Port>%s</Port>\n", xmlEscape(g.portName))
	}
	if g.baudRate != 0 {
		fmt.Fprintf(&b, "<BaudRate>%d</BaudRate>\n", int(g.baudRate))
	}
	if g.dataBits != 0 {
		fmt.Fprintf(&b, "<DataBits>%d</DataBits>\n", g.dataBits)
	}
	if g.parity != ParityNone {
		fmt.Fprintf(&b, "<Parity>%s</Parity>\n", g.parity.String())
	}
	if g.stopBits != StopBitsOne {
		fmt.Fprintf(&b, "<StopBits>%s</StopBits>\n", g.stopBits.String())
	}
	if g.flowControl != FlowControlNone {
		fmt.Fprintf(&b, "<FlowControl>%s</FlowControl>\n", g.flowControl.String())
	}
	return b.String()
}

// SetSettings implements IGXMedia
func (g *GXWebSerial) SetSettings(value string) error {

	if strings.TrimSpace(value) == "" {
		return nil
	}
	dec := xml.NewDecoder(strings.NewReader("<root>" + value + "</root>"))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "BaudRate":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				g.baudRate = BaudRate(n)
			}
		case "DataBits":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				g.dataBits = n
			}
		case "Parity":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
			if p, err := ParityParse(strings.TrimSpace(v)); err == nil {
				g.parity = p
			}
		case "StopBits":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
			if s, err := StopBitsParse(strings.TrimSpace(v)); err == nil {
				g.stopBits = s
			}
		case "FlowControl":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
			if f, err := FlowControlParse(strings.TrimSpace(v)); err == nil {
				g.flowControl = f
			}
		case "Port":
			var v string
			if err := dec.DecodeElement(&v, &se); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetSynchronous implements IGXMedia
func (g *GXWebSerial) GetSynchronous() func() {
	g.mu.Lock()
	g.synchronous = true
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		g.synchronous = false
		g.mu.Unlock()
	}
}

// IsSynchronous implements IGXMedia
func (g *GXWebSerial) IsSynchronous() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.synchronous
}

// ResetSynchronousBuffer implements IGXMedia
func (g *GXWebSerial) ResetSynchronousBuffer() {
	g.received.Reset()
	g.mu.Lock()
	g.receivedSize = 0
	g.mu.Unlock()
}

// GetBytesSent implements IGXMedia
func (g *GXWebSerial) GetBytesSent() uint64 {
	return g.bytesSent
}

// GetBytesReceived implements IGXMedia
func (g *GXWebSerial) GetBytesReceived() uint64 {
	return g.bytesReceived
}

// ResetByteCounters implements IGXMedia
func (g *GXWebSerial) ResetByteCounters() {
	g.bytesSent = 0
	g.bytesReceived = 0
}

// Validate implements IGXMedia
func (g *GXWebSerial) Validate() error {
	if g.port == nil {
		return fmt.Errorf("%w", ErrPortNotSet)
	}
	if g.baudRate <= 0 {
		return fmt.Errorf("%s", g.p.Sprintf("msg.invalid_baudrate"))
	}
	return nil
}

// SetEop implements IGXMedia
func (g *GXWebSerial) SetEop(eop any) {
	g.eop = eop
}

// GetEop implements IGXMedia
func (g *GXWebSerial) GetEop() any {
	return g.eop
}

// GetTimeout returns the open and write timeout in milliseconds.
func (g *GXWebSerial) GetTimeout() uint32 {
	return uint32(g.timeout / time.Millisecond)
}

// SetTimeout sets the open and write timeout in milliseconds.
func (g *GXWebSerial) SetTimeout(value uint32) error {
	g.timeout = time.Duration(value) * time.Millisecond
	return nil
}

// GetFlowControl returns the configured flow control mode.
func (g *GXWebSerial) GetFlowControl() FlowControl {
	return g.flowControl
}

// SetFlowControl sets the flow control mode used when the port is opened.
func (g *GXWebSerial) SetFlowControl(value FlowControl) {
	g.flowControl = value
}

// GetTrace implements IGXMedia
func (g *GXWebSerial) GetTrace() gxcommon.TraceLevel {
	return g.traceLevel
}

// SetTrace implements IGXMedia
func (g *GXWebSerial) SetTrace(traceLevel gxcommon.TraceLevel) error {
	g.traceLevel = traceLevel
	return nil
}

// SetLogger sets the logger used for the media's own diagnostics. A nil
// logger disables them.
func (g *GXWebSerial) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g.mu.Lock()
	g.logger = logger
	g.mu.Unlock()
}

// SetOnReceived implements IGXMedia
func (g *GXWebSerial) SetOnReceived(value gxcommon.ReceivedEventHandler) {
	g.mu.Lock()
	g.onReceive = value
	g.mu.Unlock()
}

// SetOnError implements IGXMedia
func (g *GXWebSerial) SetOnError(value gxcommon.ErrorEventHandler) {
	g.mu.Lock()
	g.onErr = value
	g.mu.Unlock()
}

// SetOnMediaStateChange implements IGXMedia
func (g *GXWebSerial) SetOnMediaStateChange(value gxcommon.MediaStateHandler) {
	g.mu.Lock()
	g.onState = value
	g.mu.Unlock()
}

// SetOnTrace implements IGXMedia
func (g *GXWebSerial) SetOnTrace(value gxcommon.TraceEventHandler) {
	g.mu.Lock()
	g.onTrace = value
	g.mu.Unlock()
}

// SetProtocol attaches the protocol that receives inbound data and
// connection lifecycle notifications.
func (g *GXWebSerial) SetProtocol(protocol Protocol) {
	g.mu.Lock()
	g.protocol = protocol
	g.mu.Unlock()
}

// GetProtocol returns the attached protocol. It fails once shutdown has
// cleared the reference; callers must not use it after the media closed.
func (g *GXWebSerial) GetProtocol() (Protocol, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.protocol == nil {
		return nil, fmt.Errorf("%w", ErrNoProtocol)
	}
	return g.protocol, nil
}

// Open implements IGXMedia.
//
// It opens the port with the configured baud rate and flow control, locks
// the port's reader and writer, starts the pump goroutines and schedules the
// protocol's ConnectionMade notification. Opening an already open media is a
// no-op; a closed media cannot be reopened.
func (g *GXWebSerial) Open() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reader != nil {
		return nil
	}
	if g.closing.Load() {
		return gxcommon.ErrConnectionClosed
	}
	if err := g.Validate(); err != nil {
		return err
	}
	g.statef(false, gxcommon.MediaStateOpening)
	g.trace(false, gxcommon.TraceTypesInfo, g.p.Sprintf("msg.opening_port", g.portName, int(g.baudRate)))

	ctx := context.Background()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	// Parity and stop bits are stored for callers that configure them but
	// are not forwarded; the port keeps its defaults for those.
	err := g.port.Open(ctx, OpenOptions{BaudRate: g.baudRate, FlowControl: g.flowControl})
	if err != nil {
		g.trace(false, gxcommon.TraceTypesError, g.p.Sprintf("msg.open_failed", g.portName, err))
		g.errorf(false, err)
		return err
	}
	reader, err := g.port.Readable().GetReader()
	if err != nil {
		_ = g.port.Close(context.Background())
		return err
	}
	writer, err := g.port.Writable().GetWriter()
	if err != nil {
		reader.ReleaseLock()
		_ = g.port.Close(context.Background())
		return err
	}
	g.reader = reader
	g.writer = writer
	g.queue = newWriteQueue()
	g.ctx, g.cancel = context.WithCancel(context.Background())

	g.trace(false, gxcommon.TraceTypesInfo, g.p.Sprintf("msg.port_opened", g.portName))
	g.statef(false, gxcommon.MediaStateOpen)

	protocol := g.protocol
	// ConnectionMade must run after Open has returned the media to its
	// caller, and before the pumps move any data.
	go func() {
		if protocol != nil {
			protocol.ConnectionMade(g)
		}
		go g.readerLoop()
		go g.writerLoop()
	}()
	return nil
}

// Write enqueues a chunk for transmission and returns immediately. Chunks
// are flushed to the port strictly in submission order. Writing to a closed
// or closing media is a no-op.
func (g *GXWebSerial) Write(chunk []byte) {
	g.mu.RLock()
	queue := g.queue
	g.mu.RUnlock()
	if queue != nil {
		queue.put(chunk)
	}
}

// Send implements IGXMedia
func (g *GXWebSerial) Send(data any, receiver string) error {
	tmp, err := gxcommon.ToBytes(data, binary.BigEndian)
	if err != nil {
		return err
	}
	g.mu.RLock()
	queue := g.queue
	g.mu.RUnlock()
	if queue == nil {
		return gxcommon.ErrConnectionClosed
	}
	//Trace data.
	str, err := gxcommon.ToString(data)
	if err != nil {
		return err
	}
	g.tracef(true, gxcommon.TraceTypesSent, "TX: %s", str)
	queue.put(tmp)
	return nil
}

// Receive implements IGXMedia
func (g *GXWebSerial) Receive(args *gxcommon.ReceiveParameters) (bool, error) {
	if args.EOP == nil && args.Count == 0 && !args.AllData {
		return false, fmt.Errorf("%s", g.p.Sprintf("msg.count_or_eop"))
	}
	terminator, err := gxcommon.ToBytes(args.EOP, binary.BigEndian)
	if err != nil {
		return false, err
	}

	var waitTime time.Duration
	if args.WaitTime <= 0 {
		waitTime = 0
	} else {
		waitTime = time.Duration(args.WaitTime) * time.Millisecond
	}
	index := g.received.Search(terminator, args.Count, waitTime)
	if index == -1 {
		return false, nil
	}

	if args.AllData {
		//Read all data.
		index = -1
	}
	args.Reply, err = gxcommon.BytesToAny2(g.received.Get(index), args.ReplyType, binary.ByteOrder(binary.BigEndian))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *GXWebSerial) handleData(data []byte) {
	str, err := gxcommon.ToString(data)
	if err != nil {
		g.tracef(true, gxcommon.TraceTypesError, "RX failed: %v", err)
		g.errorf(true, err)
	} else {
		g.tracef(true, gxcommon.TraceTypesReceived, "RX: %s", str)
	}
	g.mu.RLock()
	synchronous := g.synchronous
	protocol := g.protocol
	g.mu.RUnlock()
	if synchronous {
		g.appendData(data)
		return
	}
	if protocol != nil {
		protocol.DataReceived(data)
	}
	g.receivef(true, data)
}

// readerLoop is the inbound pump. It reads chunks from the port's readable
// stream and forwards them to the protocol in arrival order until the stream
// ends, a read fails, or the pump is cancelled by shutdown.
func (g *GXWebSerial) readerLoop() {
	g.mu.RLock()
	reader := g.reader
	ctx := g.ctx
	g.mu.RUnlock()
	if reader == nil {
		return
	}
	for {
		value, done, err := reader.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled by shutdown.
				return
			}
			g.trace(true, gxcommon.TraceTypesError, g.p.Sprintf("msg.io_failed", err))
			g.errorf(true, err)
			g.cleanup(err)
			return
		}
		if done {
			g.cleanup(ErrPeerClosed)
			return
		}
		if len(value) > 0 {
			g.bytesReceived += uint64(len(value))
			g.handleData(value)
		}
	}
}

// writerLoop is the outbound pump. It flushes queued chunks to the port's
// writable stream strictly in submission order; a chunk's write completes
// before the next begins. A failed write shuts the media down with that
// error; the chunk is not retried or requeued.
func (g *GXWebSerial) writerLoop() {
	g.mu.RLock()
	writer := g.writer
	queue := g.queue
	ctx := g.ctx
	g.mu.RUnlock()
	if writer == nil || queue == nil {
		return
	}
	for {
		chunk, ok := queue.take()
		if !ok {
			// Cancelled by shutdown.
			return
		}
		wctx := ctx
		var cancel context.CancelFunc
		if timeout := g.timeout; timeout > 0 {
			wctx, cancel = context.WithTimeout(ctx, timeout)
		}
		err := writer.Write(wctx, chunk)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			g.trace(true, gxcommon.TraceTypesError, g.p.Sprintf("msg.io_failed", err))
			g.errorf(true, err)
			g.cleanup(err)
			return
		}
		g.bytesSent += uint64(len(chunk))
	}
}

// abandoned is the finalizer guard for a media dropped without Close. It
// indicates a caller bug; the media is still shut down so the port is not
// leaked.
func (g *GXWebSerial) abandoned() {
	if !g.IsOpen() {
		return
	}
	g.mu.RLock()
	logger := g.logger
	g.mu.RUnlock()
	logger.Warn("serial media was reclaimed without being closed",
		zap.String("port", g.portName))
	g.cleanup(ErrNotClosed)
}

// cleanup is the single shutdown transition. Only the first trigger runs it:
// the pumps are cancelled, the stream locks released, the port close is
// detached into the manager's closing registry, and the protocol is notified
// exactly once after the port has fully closed.
func (g *GXWebSerial) cleanup(err error) {
	g.closeOnce.Do(func() {
		g.closing.Store(true)
		runtime.SetFinalizer(g, nil)

		g.mu.Lock()
		g.statef(false, gxcommon.MediaStateClosing)
		if g.cancel != nil {
			g.cancel()
		}
		if g.queue != nil {
			g.queue.close()
		}
		if g.reader != nil {
			g.reader.ReleaseLock()
			g.reader = nil
		}
		if g.writer != nil {
			g.writer.ReleaseLock()
			g.writer = nil
		}
		port := g.port
		g.port = nil
		protocol := g.protocol
		g.protocol = nil
		manager := g.manager
		logger := g.logger
		g.mu.Unlock()

		if port == nil {
			if protocol != nil {
				protocol.ConnectionLost(err)
			}
			g.statef(true, gxcommon.MediaStateClosed)
			return
		}

		var finish func()
		if manager != nil {
			// Registered before the close starts so new connection
			// attempts observe the in-flight close.
			finish = manager.registerClosing()
		}
		go func() {
			logger.Debug("closing serial port", zap.String("port", g.portName))
			g.trace(true, gxcommon.TraceTypesInfo, g.p.Sprintf("msg.closing_port", g.portName))
			if cerr := port.Close(context.Background()); cerr != nil {
				logger.Warn("serial port close failed",
					zap.String("port", g.portName), zap.Error(cerr))
				g.errorf(true, cerr)
			} else {
				logger.Debug("closed serial port", zap.String("port", g.portName))
				g.trace(true, gxcommon.TraceTypesInfo, g.p.Sprintf("msg.port_closed", g.portName))
			}
			// The port is physically closed before the protocol learns
			// the connection is lost, so the callback may reopen it.
			if protocol != nil {
				protocol.ConnectionLost(err)
			}
			g.statef(true, gxcommon.MediaStateClosed)
			if finish != nil {
				finish()
			}
		}()
	})
}

// Close implements IGXMedia.
//
// It initiates a clean shutdown and returns immediately; the protocol's
// ConnectionLost fires with a nil error once the port has closed. Close is
// idempotent and safe to call concurrently with an internally triggered
// shutdown.
func (g *GXWebSerial) Close() error {
	g.cleanup(nil)
	return nil
}

func (g *GXWebSerial) receivef(lock bool, data []byte) {
	var cb gxcommon.ReceivedEventHandler
	if lock {
		g.mu.RLock()
		cb = g.onReceive
		g.mu.RUnlock()
	} else {
		cb = g.onReceive
	}
	if cb != nil {
		cb(g, *gxcommon.NewReceiveEventArgs(data, g.portName))
	}
}

func (g *GXWebSerial) errorf(lock bool, err error) {
	var cb gxcommon.ErrorEventHandler
	if lock {
		g.mu.RLock()
		cb = g.onErr
		g.mu.RUnlock()
	} else {
		cb = g.onErr
	}
	if cb != nil {
		cb(g, err)
	}
}

func (g *GXWebSerial) tracef(lock bool, traceType gxcommon.TraceTypes, fmtStr string, a ...any) {
	var cb gxcommon.TraceEventHandler
	trace := false
	if lock {
		g.mu.RLock()
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
		g.mu.RUnlock()
	} else {
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
	}
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, fmt.Sprintf(fmtStr, a...), "")
		var m gxcommon.IGXMedia = g
		cb(m, *p)
	}
}

func (g *GXWebSerial) trace(lock bool, traceType gxcommon.TraceTypes, message string) {
	var cb gxcommon.TraceEventHandler
	trace := false
	if lock {
		g.mu.RLock()
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
		g.mu.RUnlock()
	} else {
		trace = !(int(g.traceLevel) < int(traceType))
		cb = g.onTrace
	}
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, message, "")
		var m gxcommon.IGXMedia = g
		cb(m, *p)
	}
}

func (g *GXWebSerial) statef(lock bool, state gxcommon.MediaState) {
	var cb gxcommon.MediaStateHandler
	if lock {
		g.mu.RLock()
		cb = g.onState
		g.mu.RUnlock()
	} else {
		cb = g.onState
	}
	if cb != nil {
		cb(g, *gxcommon.NewMediaStateEventArgs(state))
	}
}

func (g *GXWebSerial) appendData(data []byte) {
	if len(data) == 0 {
		return
	}
	g.received.Append(data)
	g.mu.Lock()
	g.receivedSize += len(data)
	g.mu.Unlock()
}

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.opening_port", "Opening serial port %s at %d bit/s")
	message.SetString(language.AmericanEnglish, "msg.port_opened", "Serial port %s is open")
	message.SetString(language.AmericanEnglish, "msg.open_failed", "open serial port %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.closing_port", "Closing serial port %s")
	message.SetString(language.AmericanEnglish, "msg.port_closed", "Serial port %s closed")
	message.SetString(language.AmericanEnglish, "msg.io_failed", "Serial I/O failed: %v")
	message.SetString(language.AmericanEnglish, "msg.count_or_eop", "Either Count or EOP must be set")
	message.SetString(language.AmericanEnglish, "msg.invalid_baudrate", "Baud rate must be a positive value")

	// --- German (de) ---
	message.SetString(language.German, "msg.opening_port", "Serielle Schnittstelle %s wird mit %d Bit/s geöffnet")
	message.SetString(language.German, "msg.port_opened", "Serielle Schnittstelle %s ist geöffnet")
	message.SetString(language.German, "msg.open_failed", "Öffnen der seriellen Schnittstelle %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.closing_port", "Serielle Schnittstelle %s wird geschlossen")
	message.SetString(language.German, "msg.port_closed", "Serielle Schnittstelle %s wurde geschlossen")
	message.SetString(language.German, "msg.io_failed", "Serielle Übertragung fehlgeschlagen: %v")
	message.SetString(language.German, "msg.count_or_eop", "Entweder Count oder EOP muss gesetzt sein")
	message.SetString(language.German, "msg.invalid_baudrate", "Die Baudrate muss ein positiver Wert sein")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.opening_port", "Avataan sarjaportti %s nopeudella %d bit/s")
	message.SetString(language.Finnish, "msg.port_opened", "Sarjaportti %s on avattu")
	message.SetString(language.Finnish, "msg.open_failed", "Sarjaportin %s avaaminen epäonnistui: %v")
	message.SetString(language.Finnish, "msg.closing_port", "Suljetaan sarjaportti %s")
	message.SetString(language.Finnish, "msg.port_closed", "Sarjaportti %s suljettu")
	message.SetString(language.Finnish, "msg.io_failed", "Sarjaliikenne epäonnistui: %v")
	message.SetString(language.Finnish, "msg.count_or_eop", "Joko Count tai EOP on asetettava")
	message.SetString(language.Finnish, "msg.invalid_baudrate", "Baudinopeuden on oltava positiivinen arvo")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.opening_port", "Öppnar serieporten %s med %d bit/s")
	message.SetString(language.Swedish, "msg.port_opened", "Serieporten %s är öppen")
	message.SetString(language.Swedish, "msg.open_failed", "Det gick inte att öppna serieporten %s: %v")
	message.SetString(language.Swedish, "msg.closing_port", "Stänger serieporten %s")
	message.SetString(language.Swedish, "msg.port_closed", "Serieporten %s stängd")
	message.SetString(language.Swedish, "msg.io_failed", "Seriell överföring misslyckades: %v")
	message.SetString(language.Swedish, "msg.count_or_eop", "Antingen Count eller EOP måste anges")
	message.SetString(language.Swedish, "msg.invalid_baudrate", "Baudhastigheten måste vara ett positivt värde")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.opening_port", "Abriendo el puerto serie %s a %d bit/s")
	message.SetString(language.Spanish, "msg.port_opened", "El puerto serie %s está abierto")
	message.SetString(language.Spanish, "msg.open_failed", "Error al abrir el puerto serie %s: %v")
	message.SetString(language.Spanish, "msg.closing_port", "Cerrando el puerto serie %s")
	message.SetString(language.Spanish, "msg.port_closed", "Puerto serie %s cerrado")
	message.SetString(language.Spanish, "msg.io_failed", "Error de E/S serie: %v")
	message.SetString(language.Spanish, "msg.count_or_eop", "Se debe establecer Count o EOP")
	message.SetString(language.Spanish, "msg.invalid_baudrate", "La velocidad en baudios debe ser un valor positivo")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.opening_port", "Avatakse jadaport %s kiirusega %d bit/s")
	message.SetString(language.Estonian, "msg.port_opened", "Jadaport %s on avatud")
	message.SetString(language.Estonian, "msg.open_failed", "Jadapordi %s avamine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.closing_port", "Suletakse jadaport %s")
	message.SetString(language.Estonian, "msg.port_closed", "Jadaport %s suleti")
	message.SetString(language.Estonian, "msg.io_failed", "Jadaside ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.count_or_eop", "Count või EOP peab olema määratud")
	message.SetString(language.Estonian, "msg.invalid_baudrate", "Boodikiirus peab olema positiivne väärtus")
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (g *GXWebSerial) Localize(language language.Tag) {
	g.p = message.NewPrinter(language)
}
