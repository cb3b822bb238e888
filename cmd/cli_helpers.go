package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/RoadWing/internal/llm"
	"github.com/josephgoksu/RoadWing/internal/telemetry"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func confirmOrAbort(prompt string) bool {
	if isJSON() {
		return true
	}
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Cancelled.")
		return false
	}
	return true
}

// llmConfigFromApp maps the app configuration onto the llm client config.
// The API key falls back to the provider environment variables inside the
// client, so an empty key here is not necessarily an error.
func llmConfigFromApp() (llm.Config, error) {
	cfg := GetConfig()
	provider, err := llm.ValidateProvider(cfg.LLM.Provider)
	if err != nil {
		return llm.Config{}, err
	}
	return llm.Config{
		Provider: provider,
		Model:    cfg.LLM.ModelName,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}, nil
}

// newTelemetryClient builds the telemetry client for one command run. It
// never fails a command: any initialization problem degrades to the noop
// client.
func newTelemetryClient() telemetry.Client {
	cfg := GetConfig()
	if !cfg.Telemetry.Enabled || cfg.Telemetry.APIKey == "" {
		return telemetry.NewNoopClient()
	}

	tcfg, err := telemetry.Load()
	if err != nil {
		return telemetry.NewNoopClient()
	}
	client, err := telemetry.NewPostHogClient(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Version:  version,
		Config:   tcfg,
		Endpoint: cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return telemetry.NewNoopClient()
	}
	return client
}

// trackCommand records one command execution and flushes the client.
func trackCommand(name string, props telemetry.Properties) {
	client := newTelemetryClient()
	defer func() { _ = client.Close() }()
	if props == nil {
		props = telemetry.Properties{}
	}
	props["command"] = name
	client.Track(telemetry.EventCommandExecuted, props)
}
