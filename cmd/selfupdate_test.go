package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSelfUpdateCmd(t *testing.T) {
	cmd := newSelfUpdateCmd()

	if cmd.Use != "self-update" {
		t.Errorf("Expected Use to be 'self-update', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected Short and Long descriptions to be set")
	}
	if cmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("Expected self-update to reject positional arguments")
	}
}

func TestRunSelfUpdate_RefusesDevelopmentBuilds(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	for _, version := range []string{"dev", ""} {
		rootCmd.Version = version

		err := runSelfUpdate(nil, nil)
		if err == nil {
			t.Errorf("Expected an error for version %q", version)
			continue
		}
		if !strings.Contains(err.Error(), "cannot self-update a development version") {
			t.Errorf("Unexpected error for version %q: %s", version, err)
		}
	}
}

func TestSelfUpdateCmdHelp(t *testing.T) {
	cmd := newSelfUpdateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Error executing self-update help: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Checks for the latest release of capnarrative") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}

func TestGithubRepoSlug(t *testing.T) {
	if githubRepoSlug != "capnarrative/capnarrative" {
		t.Errorf("Unexpected release repository %s", githubRepoSlug)
	}
}
