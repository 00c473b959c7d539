package utils

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingService(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	assert.NoError(t, PingService(context.Background(), "http://"+ln.Addr().String(), time.Second))
}

func TestPingServiceFailures(t *testing.T) {
	assert.Error(t, PingService(context.Background(), "http://127.0.0.1:1", 200*time.Millisecond))
	assert.Error(t, PingService(context.Background(), "::not a url", time.Second))
	assert.Error(t, PingService(context.Background(), "/relative/only", time.Second))
}
