package gxwebserial

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type readResult struct {
	value []byte
	done  bool
	err   error
}

// mockPort is an in-memory SerialPort with scripted reads, recorded writes
// and a gate to hold Close open while a test inspects the in-flight state.
type mockPort struct {
	mu          sync.Mutex
	name        string
	opened      bool
	openCount   int
	openErr     error
	openHook    func()
	lastOptions OpenOptions

	closeGate  chan struct{} // when non-nil, Close blocks until it is closed
	closeCount int
	closed     atomic.Bool

	reads       chan readResult
	readCalls   atomic.Int32
	writes      [][]byte
	writeSignal chan struct{}
	failWriteAt int // 1-based index of the write that fails
	writeErr    error

	readerHeld     bool
	writerHeld     bool
	readerReleases int
	writerReleases int
}

func newMockPort(name string) *mockPort {
	return &mockPort{
		name:        name,
		reads:       make(chan readResult, 16),
		writeSignal: make(chan struct{}, 16),
	}
}

func (m *mockPort) Name() string { return m.name }

func (m *mockPort) Open(ctx context.Context, options OpenOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openErr != nil {
		return m.openErr
	}
	if m.openHook != nil {
		m.openHook()
	}
	m.opened = true
	m.openCount++
	m.lastOptions = options
	return nil
}

func (m *mockPort) Readable() ReadableStream { return mockReadable{m} }
func (m *mockPort) Writable() WritableStream { return mockWritable{m} }

func (m *mockPort) Close(ctx context.Context) error {
	m.mu.Lock()
	gate := m.closeGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	m.mu.Lock()
	m.opened = false
	m.closeCount++
	m.mu.Unlock()
	m.closed.Store(true)
	return nil
}

type mockReadable struct{ m *mockPort }

func (r mockReadable) GetReader() (StreamReader, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.readerHeld {
		return nil, fmt.Errorf("%w: %s readable stream", ErrStreamLocked, r.m.name)
	}
	r.m.readerHeld = true
	return &mockReader{m: r.m}, nil
}

type mockWritable struct{ m *mockPort }

func (w mockWritable) GetWriter() (StreamWriter, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	if w.m.writerHeld {
		return nil, fmt.Errorf("%w: %s writable stream", ErrStreamLocked, w.m.name)
	}
	w.m.writerHeld = true
	return &mockWriter{m: w.m}, nil
}

type mockReader struct{ m *mockPort }

func (r *mockReader) Read(ctx context.Context) ([]byte, bool, error) {
	r.m.readCalls.Add(1)
	select {
	case res := <-r.m.reads:
		return res.value, res.done, res.err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (r *mockReader) ReleaseLock() {
	r.m.mu.Lock()
	r.m.readerHeld = false
	r.m.readerReleases++
	r.m.mu.Unlock()
}

type mockWriter struct{ m *mockPort }

func (w *mockWriter) Write(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.m.mu.Lock()
	if w.m.failWriteAt == len(w.m.writes)+1 {
		err := w.m.writeErr
		w.m.mu.Unlock()
		return err
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	w.m.writes = append(w.m.writes, cp)
	w.m.mu.Unlock()
	select {
	case w.m.writeSignal <- struct{}{}:
	default:
	}
	return nil
}

func (w *mockWriter) ReleaseLock() {
	w.m.mu.Lock()
	w.m.writerHeld = false
	w.m.writerReleases++
	w.m.mu.Unlock()
}

func (m *mockPort) recordedWrites() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// testProtocol records lifecycle callbacks on channels.
type testProtocol struct {
	made   chan *GXWebSerial
	data   chan []byte
	lost   chan error
	onLost func(error)
}

func newTestProtocol() *testProtocol {
	return &testProtocol{
		made: make(chan *GXWebSerial, 4),
		data: make(chan []byte, 16),
		lost: make(chan error, 4),
	}
}

func (p *testProtocol) ConnectionMade(media *GXWebSerial) { p.made <- media }
func (p *testProtocol) DataReceived(data []byte)          { p.data <- data }

func (p *testProtocol) ConnectionLost(err error) {
	if p.onLost != nil {
		p.onLost(err)
	}
	p.lost <- err
}

func newTestConnection(t *testing.T, port *mockPort) (*GXWebSerial, *testProtocol, *ConnectionManager) {
	t.Helper()
	manager := NewConnectionManager(zap.NewNop())
	manager.SetPort(port)
	protocol := newTestProtocol()
	media, _, err := manager.CreateConnection(context.Background(),
		func() Protocol { return protocol },
		ConnectionOptions{BaudRate: BaudRate115200})
	require.NoError(t, err)
	select {
	case made := <-protocol.made:
		require.Same(t, media, made)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for ConnectionMade")
	}
	return media, protocol, manager
}

func waitLost(t *testing.T, protocol *testProtocol) error {
	t.Helper()
	select {
	case err := <-protocol.lost:
		return err
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for ConnectionLost")
		return nil
	}
}

func TestConnectionMadeIsAsynchronous(t *testing.T) {
	port := newMockPort("mock0")
	media, _, _ := newTestConnection(t, port)
	require.True(t, media.IsOpen())
	require.False(t, media.IsClosing())
	require.Equal(t, 1, port.openCount)
	require.NoError(t, media.Close())
}

func TestInboundOrdering(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)
	defer media.Close()

	port.reads <- readResult{value: []byte("X")}
	port.reads <- readResult{value: []byte("Y")}
	port.reads <- readResult{value: []byte("Z")}

	for _, want := range []string{"X", "Y", "Z"} {
		select {
		case got := <-protocol.data:
			require.Equal(t, want, string(got))
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for chunk %s", want)
		}
	}
}

func TestOutboundOrdering(t *testing.T) {
	port := newMockPort("mock0")
	media, _, _ := newTestConnection(t, port)
	defer media.Close()

	media.Write([]byte("A"))
	media.Write([]byte("B"))
	media.Write([]byte("C"))

	for i := 0; i < 3; i++ {
		select {
		case <-port.writeSignal:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for write")
		}
	}
	writes := port.recordedWrites()
	require.Equal(t, [][]byte{[]byte("A"), []byte("B"), []byte("C")}, writes)
}

func TestCloseIsIdempotent(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	require.NoError(t, media.Close())
	require.NoError(t, media.Close())
	require.NoError(t, media.Close())

	require.NoError(t, waitLost(t, protocol))
	select {
	case err := <-protocol.lost:
		t.Fatalf("protocol notified twice: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	require.Equal(t, 1, port.closeCount)
	require.True(t, media.IsClosing())
}

func TestEndOfStreamTriggersShutdown(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	port.reads <- readResult{done: true}

	err := waitLost(t, protocol)
	require.ErrorIs(t, err, ErrPeerClosed)
	require.True(t, media.IsClosing())

	// The pump must not attempt further reads.
	calls := port.readCalls.Load()
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, calls, port.readCalls.Load())
}

func TestReadFailureTriggersShutdown(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	injected := errors.New("device gone")
	port.reads <- readResult{err: injected}

	err := waitLost(t, protocol)
	require.ErrorIs(t, err, injected)
	require.True(t, media.IsClosing())
	require.Equal(t, 1, port.closeCount)
}

func TestWriteFailureTriggersShutdown(t *testing.T) {
	port := newMockPort("mock0")
	injected := errors.New("write refused")
	port.failWriteAt = 2
	port.writeErr = injected
	media, protocol, _ := newTestConnection(t, port)

	media.Write([]byte("A"))
	media.Write([]byte("B"))
	media.Write([]byte("C"))

	err := waitLost(t, protocol)
	require.ErrorIs(t, err, injected)

	// Chunk B failed; chunk C must never reach the device.
	require.Equal(t, [][]byte{[]byte("A")}, port.recordedWrites())
	require.Equal(t, 1, port.closeCount)
}

func TestPortClosesBeforeConnectionLost(t *testing.T) {
	port := newMockPort("mock0")
	var closedAtNotify atomic.Bool
	manager := NewConnectionManager(nil)
	manager.SetPort(port)
	protocol := newTestProtocol()
	protocol.onLost = func(error) {
		closedAtNotify.Store(port.closed.Load())
	}
	media, _, err := manager.CreateConnection(context.Background(),
		func() Protocol { return protocol },
		ConnectionOptions{BaudRate: BaudRate9600})
	require.NoError(t, err)

	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))
	require.True(t, closedAtNotify.Load())
}

func TestShutdownReentryReleasesStreamsOnce(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	require.NoError(t, media.Close())
	require.NoError(t, media.Close())
	media.cleanup(errors.New("late trigger"))

	require.NoError(t, waitLost(t, protocol))
	port.mu.Lock()
	defer port.mu.Unlock()
	require.Equal(t, 1, port.readerReleases)
	require.Equal(t, 1, port.writerReleases)
	require.False(t, port.readerHeld)
	require.False(t, port.writerHeld)
}

func TestReleaseLockIsIdempotent(t *testing.T) {
	port := newMockPort("mock0")
	port.mu.Lock()
	port.opened = true
	port.mu.Unlock()

	reader, err := port.Readable().GetReader()
	require.NoError(t, err)
	_, err = port.Readable().GetReader()
	require.ErrorIs(t, err, ErrStreamLocked)

	reader.ReleaseLock()
	reader.ReleaseLock()

	again, err := port.Readable().GetReader()
	require.NoError(t, err)
	again.ReleaseLock()
}

func TestGetProtocolAfterShutdown(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	got, err := media.GetProtocol()
	require.NoError(t, err)
	require.Same(t, Protocol(protocol), got)

	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))

	_, err = media.GetProtocol()
	require.ErrorIs(t, err, ErrNoProtocol)

	// Writing to a closed media must not panic; nothing reaches the port.
	media.Write([]byte("late"))
	require.Empty(t, port.recordedWrites())
}

func TestAbandonedMediaShutsDownWithDiagnostic(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	// The finalizer guard path: the media was dropped while still open.
	media.abandoned()

	err := waitLost(t, protocol)
	require.ErrorIs(t, err, ErrNotClosed)
	require.Equal(t, 1, port.closeCount)

	// Once closed the guard is a no-op.
	media.abandoned()
	select {
	case err := <-protocol.lost:
		t.Fatalf("protocol notified twice: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCannotReopenClosedMedia(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)

	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))

	err := media.Open()
	require.ErrorIs(t, err, gxcommon.ErrConnectionClosed)
}

func TestMediaStateSequence(t *testing.T) {
	port := newMockPort("mock0")
	media := NewGXWebSerial(port, BaudRate9600, 8, ParityNone, StopBitsOne)
	protocol := newTestProtocol()
	media.SetProtocol(protocol)

	var mu sync.Mutex
	var states []gxcommon.MediaState
	media.SetOnMediaStateChange(func(m gxcommon.IGXMedia, e gxcommon.MediaStateEventArgs) {
		mu.Lock()
		states = append(states, e.State())
		mu.Unlock()
	})

	require.NoError(t, media.Open())
	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))

	// MediaStateClosed is raised after ConnectionLost.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) == 4
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []gxcommon.MediaState{
		gxcommon.MediaStateOpening,
		gxcommon.MediaStateOpen,
		gxcommon.MediaStateClosing,
		gxcommon.MediaStateClosed,
	}, states)
}

func TestOpenForwardsBaudAndFlowControlOnly(t *testing.T) {
	port := newMockPort("mock0")
	media := NewGXWebSerial(port, BaudRate19200, 7, ParityEven, StopBitsTwo)
	media.SetFlowControl(FlowControlHardware)

	require.NoError(t, media.Open())
	defer media.Close()

	port.mu.Lock()
	defer port.mu.Unlock()
	require.Equal(t, BaudRate19200, port.lastOptions.BaudRate)
	require.Equal(t, FlowControlHardware, port.lastOptions.FlowControl)
	// Parity and stop bits are compatibility placeholders; the port keeps
	// its defaults for them.
	require.Equal(t, 0, port.lastOptions.DataBits)
	require.Equal(t, ParityNone, port.lastOptions.Parity)
	require.Equal(t, StopBitsOne, port.lastOptions.StopBits)
}

func TestSynchronousReceive(t *testing.T) {
	port := newMockPort("mock0")
	media, protocol, _ := newTestConnection(t, port)
	defer media.Close()

	stop := media.GetSynchronous()
	defer stop()
	require.True(t, media.IsSynchronous())

	port.reads <- readResult{value: []byte("pong\n")}

	r := gxcommon.NewReceiveParameters[string]()
	r.EOP = "\n"
	r.WaitTime = 1000
	ok, err := media.Receive(r)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, fmt.Sprintf("%v", r.Reply), "pong")

	// Data consumed synchronously must not reach the protocol.
	select {
	case data := <-protocol.data:
		t.Fatalf("unexpected async delivery: %q", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	port := newMockPort("mock0")
	media := NewGXWebSerial(port, BaudRate57600, 7, ParityOdd, StopBitsTwo)
	media.SetFlowControl(FlowControlHardware)

	settings := media.GetSettings()
	require.Contains(t, settings, "<BaudRate>57600</BaudRate>")

	other := NewGXWebSerial(newMockPort("mock0"), 0, 0, ParityNone, StopBitsOne)
	require.NoError(t, other.SetSettings(settings))
	require.Equal(t, settings, other.GetSettings())
}
