package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splax/hostrix/pkg/config"
)

func TestRoutesCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"routes"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "/deploy/{projectName}")
	assert.Contains(t, out.String(), "/project/new")
	assert.Contains(t, out.String(), "GET,POST")
}

func TestServeFlagsOverrideConfig(t *testing.T) {
	cfg := config.DashboardConfig{Addr: ":3000", LogLevel: "info"}
	opts := &serveOptions{addr: "127.0.0.1:9000", projects: "fixtures.yaml"}
	opts.apply(&cfg)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "fixtures.yaml", cfg.MockProjectsPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestVersionFlag(t *testing.T) {
	root := newRootCmd()
	root.Version = "1.2.3"
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "hostrix version 1.2.3\n", out.String())
}
