package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf, "backup")

	p.Update(0)
	p.Update(0.001)
	p.Update(0.4)
	p.Update(1)
	p.Done()

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "\r"))
	assert.Contains(t, out, " 40%")
	assert.True(t, strings.HasSuffix(out, "100%\n"))
}

func TestProgressPrinter_DoneWithoutUpdates(t *testing.T) {
	var buf bytes.Buffer
	newProgressPrinter(&buf, "restore").Done()
	assert.Empty(t, buf.String())
}
