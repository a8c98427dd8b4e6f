//go:build linux

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
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// TTYPort is a SerialPort over a POSIX tty device file. The port is opened
// in raw, low-latency mode. A self-pipe unblocks pending reads when the
// port is closed.
type TTYPort struct {
	device string

	mu         sync.Mutex
	fd         int
	file       *os.File
	pipeR      int // self-pipe read fd
	pipeW      int // self-pipe write fd
	done       chan struct{}
	opened     bool
	readerHeld bool
	writerHeld bool
}

// NewTTYPort creates a port for the given device file, such as /dev/ttyUSB0.
// The device is not touched until Open is called.
func NewTTYPort(device string) *TTYPort {
	return &TTYPort{device: device, fd: -1}
}

// Name implements SerialPort.
func (t *TTYPort) Name() string {
	return t.device
}

// Open implements SerialPort. The tty is configured for raw mode with the
// given baud rate; hardware flow control maps to CRTSCTS. DataBits, Parity
// and StopBits are applied when set.
func (t *TTYPort) Open(ctx context.Context, options OpenOptions) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opened {
		return fmt.Errorf("serial port %s is already open", t.device)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	baud, ok := baudToUnix(int(options.BaudRate))
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", int(options.BaudRate))
	}
	bits, ok := dataBitsToUnix(options.DataBits)
	if !ok {
		return fmt.Errorf("unsupported data bits %d", options.DataBits)
	}

	fd, err := syscall.Open(t.device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CMSPAR | unix.CSTOPB | unix.CRTSCTS
	termios.Cflag |= bits

	switch options.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	case ParityMark:
		termios.Cflag |= unix.PARENB | unix.PARODD | unix.CMSPAR
	case ParitySpace:
		termios.Cflag |= unix.PARENB | unix.CMSPAR
	}
	if options.StopBits == StopBitsTwo {
		termios.Cflag |= unix.CSTOPB
	}
	if options.FlowControl == FlowControlHardware {
		termios.Cflag |= unix.CRTSCTS
	}

	// Baud rate
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// Set VMIN=1, VTIME=0 for immediate reads
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("set termios: %w", err)
	}

	// Turn back into blocking mode now that config is done
	syscall.SetNonblock(fd, false)

	// Create self-pipe so Close can unblock a pending read
	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("pipe: %w", err)
	}

	t.fd = fd
	t.file = os.NewFile(uintptr(fd), t.device)
	t.pipeR = pipeFds[0]
	t.pipeW = pipeFds[1]
	t.done = make(chan struct{})
	t.opened = true
	return nil
}

// Readable implements SerialPort.
func (t *TTYPort) Readable() ReadableStream {
	return ttyReadable{t}
}

// Writable implements SerialPort.
func (t *TTYPort) Writable() WritableStream {
	return ttyWritable{t}
}

// Close implements SerialPort. It unblocks any pending read and releases
// the device. Safe to call more than once.
func (t *TTYPort) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opened {
		return nil
	}
	t.opened = false
	close(t.done)
	// Wake up poll using the self-pipe
	if t.pipeW > 0 {
		unix.Write(t.pipeW, []byte{1})
	}
	var err error
	if t.file != nil {
		err = t.file.Close()
		t.file = nil
	}
	if t.pipeR > 0 {
		unix.Close(t.pipeR)
		t.pipeR = 0
	}
	if t.pipeW > 0 {
		unix.Close(t.pipeW)
		t.pipeW = 0
	}
	t.fd = -1
	t.readerHeld = false
	t.writerHeld = false
	return err
}

type ttyReadable struct {
	t *TTYPort
}

func (r ttyReadable) GetReader() (StreamReader, error) {
	t := r.t
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opened {
		return nil, fmt.Errorf("serial port %s is not open", t.device)
	}
	if t.readerHeld {
		return nil, fmt.Errorf("%w: %s readable stream", ErrStreamLocked, t.device)
	}
	t.readerHeld = true
	return &ttyReader{t: t}, nil
}

type ttyWritable struct {
	t *TTYPort
}

func (w ttyWritable) GetWriter() (StreamWriter, error) {
	t := w.t
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opened {
		return nil, fmt.Errorf("serial port %s is not open", t.device)
	}
	if t.writerHeld {
		return nil, fmt.Errorf("%w: %s writable stream", ErrStreamLocked, t.device)
	}
	t.writerHeld = true
	return &ttyWriter{t: t}, nil
}

type ttyReader struct {
	t *TTYPort
}

// Read implements StreamReader. It polls the device and the self-pipe with
// a short timeout so that ctx cancellation is honored; a closed port or a
// hung up line is reported as end-of-stream.
func (r *ttyReader) Read(ctx context.Context) ([]byte, bool, error) {
	t := r.t
	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		t.mu.Lock()
		fd, pipeR, file, opened, done := t.fd, t.pipeR, t.file, t.opened, t.done
		t.mu.Unlock()
		if !opened || file == nil {
			return nil, true, nil
		}
		pfd := []unix.PollFd{
			{Fd: int32(fd), Events: unix.POLLIN},
			{Fd: int32(pipeR), Events: unix.POLLIN},
		}
		n, err := unix.Poll(pfd, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, false, err
		}
		select {
		case <-done:
			return nil, true, nil
		default:
		}
		if n == 0 {
			continue
		}
		if pfd[1].Revents&unix.POLLIN != 0 {
			// Drain pipe
			var b [1]byte
			unix.Read(pipeR, b[:])
			return nil, true, nil
		}
		if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0 {
			nr, err := file.Read(buf)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EIO) {
					// Line hangup or local close: the stream has ended.
					return nil, true, nil
				}
				return nil, false, err
			}
			if nr == 0 {
				return nil, true, nil
			}
			out := make([]byte, nr)
			copy(out, buf[:nr])
			return out, false, nil
		}
	}
}

// ReleaseLock implements StreamReader. Safe to call more than once.
func (r *ttyReader) ReleaseLock() {
	r.t.mu.Lock()
	r.t.readerHeld = false
	r.t.mu.Unlock()
}

type ttyWriter struct {
	t *TTYPort
}

// Write implements StreamWriter. The whole chunk is written before Write
// returns.
func (w *ttyWriter) Write(ctx context.Context, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := w.t
	t.mu.Lock()
	file := t.file
	opened := t.opened
	t.mu.Unlock()
	if !opened || file == nil {
		return fmt.Errorf("serial port %s is not open", t.device)
	}
	for len(p) > 0 {
		n, err := file.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// ReleaseLock implements StreamWriter. Safe to call more than once.
func (w *ttyWriter) ReleaseLock() {
	w.t.mu.Lock()
	w.t.writerHeld = false
	w.t.mu.Unlock()
}

func baudToUnix(baud int) (uint32, bool) {
	switch baud {
	case 300:
		return unix.B300, true
	case 1200:
		return unix.B1200, true
	case 2400:
		return unix.B2400, true
	case 4800:
		return unix.B4800, true
	case 9600:
		return unix.B9600, true
	case 19200:
		return unix.B19200, true
	case 38400:
		return unix.B38400, true
	case 57600:
		return unix.B57600, true
	case 115200:
		return unix.B115200, true
	case 230400:
		return unix.B230400, true
	default:
		return 0, false
	}
}

func dataBitsToUnix(bits int) (uint32, bool) {
	switch bits {
	case 0, 8:
		return unix.CS8, true
	case 7:
		return unix.CS7, true
	case 6:
		return unix.CS6, true
	case 5:
		return unix.CS5, true
	default:
		return 0, false
	}
}
