package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCmdHelp(t *testing.T) {
	viper.Reset()

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	output := b.String()
	for _, want := range []string{"roadmap planning", "Usage:", "Commands:"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"init", "generate", "add", "list", "board", "timeline", "stats", "status", "member", "depend", "delete", "show", "roadmaps", "use", "config"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestCurrentRoadmapIDFlagWins(t *testing.T) {
	old := roadmapFlag
	defer func() { roadmapFlag = old }()

	roadmapFlag = "abc"
	id, err := currentRoadmapID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc" {
		t.Errorf("expected flag value, got %q", id)
	}

	roadmapFlag = ""
	GlobalAppConfig.CurrentUse.RoadmapID = ""
	if _, err := currentRoadmapID(); err == nil {
		t.Error("expected error with no roadmap configured")
	}
}
