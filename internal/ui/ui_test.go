package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Header("Generated 2 files")
	p.Success("wrote", "a.h")
	p.Warning("skipped", "Flags")
	p.Error("failed", "b.cc")

	want := "\nGenerated 2 files\n" +
		"  ✔ wrote           a.h\n" +
		"  ! skipped         Flags\n" +
		"  ✘ failed          b.cc\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Color(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Success("wrote", "a.h")

	assert.Contains(t, buf.String(), ColorGreen+"✔"+ColorReset)
	assert.Contains(t, buf.String(), ColorGreen+"a.h"+ColorReset)
}

func TestColorEnabled_NonTerminalWriter(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
}
