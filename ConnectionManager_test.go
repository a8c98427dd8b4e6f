package gxwebserial

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCreateConnectionRequiresPort(t *testing.T) {
	manager := NewConnectionManager(nil)
	_, _, err := manager.CreateConnection(context.Background(),
		func() Protocol { return newTestProtocol() }, ConnectionOptions{BaudRate: BaudRate9600})
	require.ErrorIs(t, err, ErrPortNotSet)
}

func TestCreateConnectionOpenFailure(t *testing.T) {
	port := newMockPort("mock0")
	injected := errors.New("device busy")
	port.openErr = injected

	manager := NewConnectionManager(nil)
	manager.SetPort(port)
	protocol := newTestProtocol()
	media, _, err := manager.CreateConnection(context.Background(),
		func() Protocol { return protocol }, ConnectionOptions{BaudRate: BaudRate9600})
	require.ErrorIs(t, err, injected)
	require.Nil(t, media)

	// No partial connection: the protocol never hears anything.
	select {
	case <-protocol.made:
		t.Fatal("ConnectionMade after a failed open")
	case err := <-protocol.lost:
		t.Fatalf("ConnectionLost after a failed open: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSerializedOpens(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	manager := NewConnectionManager(zap.New(core))

	first := newMockPort("mock0")
	first.closeGate = make(chan struct{})
	manager.SetPort(first)

	media1, protocol1, err := manager.CreateConnection(context.Background(),
		func() Protocol { return newTestProtocol() }, ConnectionOptions{BaudRate: BaudRate9600})
	require.NoError(t, err)
	_ = protocol1

	// Close registers synchronously; the port close itself is held open by
	// the gate.
	require.NoError(t, media1.Close())
	require.Equal(t, 1, manager.ClosingCount())

	second := newMockPort("mock1")
	var firstClosedAtOpen atomic.Bool
	second.openHook = func() {
		firstClosedAtOpen.Store(first.closed.Load())
	}
	manager.SetPort(second)

	type result struct {
		media *GXWebSerial
		err   error
	}
	done := make(chan result, 1)
	go func() {
		media, _, err := manager.CreateConnection(context.Background(),
			func() Protocol { return newTestProtocol() }, ConnectionOptions{BaudRate: BaudRate9600})
		done <- result{media, err}
	}()

	// The second open must wait for the in-flight close.
	select {
	case r := <-done:
		t.Fatalf("connection created while a close was in flight: %v", r.err)
	case <-time.After(100 * time.Millisecond):
	}
	second.mu.Lock()
	require.Equal(t, 0, second.openCount)
	second.mu.Unlock()
	require.NotZero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	close(first.closeGate)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		require.NoError(t, r.media.Close())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for the serialized open")
	}
	require.True(t, firstClosedAtOpen.Load())
}

func TestAwaitDrainHonorsContext(t *testing.T) {
	manager := NewConnectionManager(nil)
	port := newMockPort("mock0")
	port.closeGate = make(chan struct{})
	manager.SetPort(port)

	media, protocol, _ := func() (*GXWebSerial, *testProtocol, *ConnectionManager) {
		protocol := newTestProtocol()
		media, _, err := manager.CreateConnection(context.Background(),
			func() Protocol { return protocol }, ConnectionOptions{BaudRate: BaudRate9600})
		require.NoError(t, err)
		return media, protocol, manager
	}()
	require.NoError(t, media.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := manager.AwaitDrain(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(port.closeGate)
	require.NoError(t, manager.AwaitDrain(context.Background()))
	require.Zero(t, manager.ClosingCount())
	require.NoError(t, waitLost(t, protocol))
}

func TestClosingEntryRemovedAfterNotification(t *testing.T) {
	manager := NewConnectionManager(nil)
	port := newMockPort("mock0")
	manager.SetPort(port)

	protocol := newTestProtocol()
	var countAtNotify atomic.Int32
	protocol.onLost = func(error) {
		countAtNotify.Store(int32(manager.ClosingCount()))
	}
	media, _, err := manager.CreateConnection(context.Background(),
		func() Protocol { return protocol }, ConnectionOptions{BaudRate: BaudRate9600})
	require.NoError(t, err)

	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))

	// The registry entry outlives the notification and is removed last.
	require.Equal(t, int32(1), countAtNotify.Load())
	require.NoError(t, manager.AwaitDrain(context.Background()))
	require.Zero(t, manager.ClosingCount())
}

func TestDefaultManagerHelpers(t *testing.T) {
	port := newMockPort("mock0")
	SetGlobalSerialPort(port)
	t.Cleanup(func() { SetGlobalSerialPort(nil) })
	require.Same(t, DefaultManager().Port(), SerialPort(port))

	protocol := newTestProtocol()
	media, got, err := CreateConnection(context.Background(),
		func() Protocol { return protocol }, ConnectionOptions{BaudRate: BaudRate115200})
	require.NoError(t, err)
	require.Same(t, Protocol(protocol), got)
	require.NoError(t, media.Close())
	require.NoError(t, waitLost(t, protocol))
}
