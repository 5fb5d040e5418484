package transport

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func startEchoServer(t *testing.T, config ServerConfig) *Server {
	t.Helper()
	config.Address = "127.0.0.1:0"
	if config.OnMessage == nil {
		config.OnMessage = func(conn *Conn, msg []byte) {
			_ = conn.Send(msg)
		}
	}
	s := NewServer(config)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return s
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServerEcho(t *testing.T) {
	s := startEchoServer(t, ServerConfig{})

	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.Send([]byte("ping")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	got, err := conn.Receive(time.Second)
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if !bytes.Equal(got, []byte("ping")) {
		t.Errorf("got %q, want ping", got)
	}
}

func TestServerConnectionCallbacks(t *testing.T) {
	var mu sync.Mutex
	var connected, disconnected []string
	s := startEchoServer(t, ServerConfig{
		OnConnect: func(c *Conn) {
			mu.Lock()
			connected = append(connected, c.ID())
			mu.Unlock()
		},
		OnDisconnect: func(c *Conn) {
			mu.Lock()
			disconnected = append(disconnected, c.ID())
			mu.Unlock()
		},
	})

	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	waitFor(t, func() bool { return s.ConnectionCount() == 1 })

	conn.Close()
	waitFor(t, func() bool { return s.ConnectionCount() == 0 })
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(disconnected) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	if len(connected) != 1 || connected[0] != disconnected[0] {
		t.Errorf("connected %v, disconnected %v", connected, disconnected)
	}
	if len(connected[0]) != 36 {
		t.Errorf("connection ID %q is not a UUID", connected[0])
	}
}

func TestServerStopClosesConnections(t *testing.T) {
	s := startEchoServer(t, ServerConfig{})
	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return s.ConnectionCount() == 1 })

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.ConnectionCount() != 0 {
		t.Errorf("ConnectionCount after Stop: %d", s.ConnectionCount())
	}
	if _, err := conn.Receive(time.Second); err == nil {
		t.Error("Receive succeeded after server stop")
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestServerStartTwice(t *testing.T) {
	s := startEchoServer(t, ServerConfig{})
	if err := s.Start(context.Background()); !errors.Is(err, ErrServerRunning) {
		t.Errorf("got %v, want ErrServerRunning", err)
	}
}

func TestServerLogsFrames(t *testing.T) {
	logger := &captureLogger{}
	s := startEchoServer(t, ServerConfig{Logger: logger})

	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	if err := conn.Send([]byte{1}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := conn.Receive(time.Second); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	waitFor(t, func() bool { return len(logger.snapshot()) == 2 })
	events := logger.snapshot()
	if events[0].ConnectionID == "" || events[0].ConnectionID != events[1].ConnectionID {
		t.Errorf("connection IDs: %q, %q", events[0].ConnectionID, events[1].ConnectionID)
	}
}

func TestConnSendAfterClose(t *testing.T) {
	s := startEchoServer(t, ServerConfig{})
	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	conn.Close()

	if err := conn.Send([]byte{1}); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Send: got %v, want ErrConnectionClosed", err)
	}
	if _, err := conn.Receive(0); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Receive: got %v, want ErrConnectionClosed", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestReceiveTimeout(t *testing.T) {
	s := startEchoServer(t, ServerConfig{OnMessage: func(*Conn, []byte) {}})
	conn, err := Dial(context.Background(), s.Addr().String(), DialConfig{})
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Receive(20 * time.Millisecond); err == nil {
		t.Error("Receive returned without data")
	}
}
