package cmd

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	assert.NoError(t, serve(ctx, srv))
}

func TestServe_ListenError(t *testing.T) {
	srv := &http.Server{Addr: "256.0.0.1:bad"}

	err := serve(context.Background(), srv)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fixture server")
}

func TestServeFixturesCommand_Flags(t *testing.T) {
	cmd := NewServeFixturesCommand()

	addr, err := cmd.Flags().GetString("addr")
	assert.NoError(t, err)
	assert.Equal(t, ":8089", addr)
	assert.NotNil(t, cmd.Flags().Lookup("token"))
	assert.NotNil(t, cmd.Flags().Lookup("quiet"))
}
