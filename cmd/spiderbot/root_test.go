package main

import (
	"bytes"
	"testing"
)

// TestNewRootCmd tests the root command wiring.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "spiderbot" {
		t.Errorf("unexpected use: %q", cmd.Use)
	}

	for _, name := range []string{"crawl", "clear", "report", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	if cmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing persistent verbose flag")
	}
}

// TestRootCmdUnknownCommand tests that unknown subcommands fail.
func TestRootCmdUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown subcommand")
	}
}

// TestRootCmdHelp tests that help runs without error.
func TestRootCmdHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("crawl")) {
		t.Errorf("help output missing subcommands:\n%s", out.String())
	}
}
