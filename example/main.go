//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxwebserial-go"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var (
	device  = flag.String("d", "", "Serial device, e.g. /dev/ttyUSB0")
	baud    = flag.String("b", "115200", "Baud rate.")
	message = flag.String("m", "", "Send message")
	rtscts  = flag.Bool("r", false, "Use hardware flow control.")
	t       = flag.String("t", "", "Trace level.")
	lang    = flag.String("lang", "", "Used language.")
)

// echoProtocol prints everything the media receives.
type echoProtocol struct {
	media *gxwebserial.GXWebSerial
	lost  chan error
}

func (p *echoProtocol) ConnectionMade(media *gxwebserial.GXWebSerial) {
	p.media = media
	fmt.Printf("Connected to %s\n", media.GetName())
}

func (p *echoProtocol) DataReceived(data []byte) {
	fmt.Printf("Async data: %s\n", strings.TrimRight(string(data), "\r\n"))
}

func (p *echoProtocol) ConnectionLost(err error) {
	p.lost <- err
}

func main() {
	flag.Parse()
	if *device == "" {
		flag.PrintDefaults()
		return
	}

	baudRate, err := gxwebserial.BaudRateParse(*baud)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	flow := gxwebserial.FlowControlNone
	if *rtscts {
		flow = gxwebserial.FlowControlHardware
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	defer logger.Sync()

	manager := gxwebserial.NewConnectionManager(logger)
	manager.SetPort(gxwebserial.NewTTYPort(*device))

	protocol := &echoProtocol{lost: make(chan error, 1)}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	media, _, err := manager.CreateConnection(ctx, func() gxwebserial.Protocol { return protocol },
		gxwebserial.ConnectionOptions{BaudRate: baudRate, FlowControl: flow})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error returned:", err)
		return
	}

	if *lang != "" {
		tag, err := language.Parse(*lang)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
		media.Localize(tag)
	}

	media.SetOnError(func(m gxcommon.IGXMedia, err error) {
		fmt.Fprintln(os.Stderr, "error:", err)
	})

	media.SetOnMediaStateChange(func(m gxcommon.IGXMedia, e gxcommon.MediaStateEventArgs) {
		fmt.Printf("Media state change : %s\n", e.State().String())
	})

	media.SetOnTrace(func(m gxcommon.IGXMedia, e gxcommon.TraceEventArgs) {
		fmt.Printf("Trace: %s\n", e.String())
	})

	if *t != "" {
		tl, err := gxcommon.TraceLevelParse(*t)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
		if err := media.SetTrace(tl); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return
		}
	}

	if *message != "" {
		media.Write([]byte(*message + "\n"))
	}

	// Run until interrupted or the connection is lost.
	select {
	case <-ctx.Done():
		media.Close()
		err := <-protocol.lost
		fmt.Printf("Connection closed: %v\n", err)
	case err := <-protocol.lost:
		fmt.Printf("Connection lost: %v\n", err)
	}
	fmt.Printf("Exit\n")
}
