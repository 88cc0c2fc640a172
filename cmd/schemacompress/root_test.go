package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["compress"])
	assert.True(t, names["bench"])
	assert.True(t, names["serve"])
}

func TestDefaultSocketPathIsPerUser(t *testing.T) {
	p := defaultSocketPath()
	assert.Contains(t, p, "schemacompressd-")
}
