package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "wordtoons [word]" {
		t.Errorf("Expected Use to be 'wordtoons [word]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "word visualizer") {
		t.Errorf("Expected Short description to mention the word visualizer, got %q", cmd.Short)
	}

	if cmd.PersistentPreRun == nil {
		t.Error("Expected PersistentPreRun to load .env files")
	}

	persistent := map[string]bool{"config": true, "log-level": true}
	flagNames := []string{
		"config", "log-level", "output", "language", "format", "batch",
		"skip-save", "list-models", "archive", "text-provider", "text-model",
		"text-timeout", "image-provider", "image-model", "image-timeout",
		"openai-image-size", "openai-image-quality", "openai-image-style",
	}

	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if persistent[name] {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestRootCommandArgs(t *testing.T) {
	resetViper(t)
	cmd := CreateRootCommand(NewFlags())

	if err := cmd.Args(cmd, []string{"happy"}); err != nil {
		t.Errorf("one word should be accepted: %v", err)
	}
	if err := cmd.Args(cmd, []string{"happy", "sad"}); err == nil {
		t.Error("two words should be rejected")
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	outputFlag := cmd.Flags().Lookup("output")
	if outputFlag == nil {
		t.Fatal("output flag not found")
	}
	if outputFlag.DefValue != DefaultOutputDir() {
		t.Errorf("Expected default output dir to be %s, got %s", DefaultOutputDir(), outputFlag.DefValue)
	}

	languageFlag := cmd.Flags().Lookup("language")
	if languageFlag == nil {
		t.Fatal("language flag not found")
	}
	if languageFlag.DefValue != "Marathi" || languageFlag.Shorthand != "l" {
		t.Errorf("Expected -l/--language defaulting to Marathi, got -%s %s", languageFlag.Shorthand, languageFlag.DefValue)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	expected := filepath.Join(home, ".local", "state", "wordtoons", "results")
	if got := DefaultOutputDir(); got != expected {
		t.Errorf("DefaultOutputDir() = %s, want %s", got, expected)
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantLang  string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `language: Tamil
gemini:
  api_key: test-key
output:
  directory: /test/output`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			wantLang: "Tamil",
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
			wantLang: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			InitConfig(tt.setupFunc(t))

			if tt.wantLang != "" && viper.GetString("language") != tt.wantLang {
				t.Errorf("language = %q, want %q", viper.GetString("language"), tt.wantLang)
			}

			// Test environment variable prefix and nested key mapping
			t.Setenv("WORDTOONS_TEST_VAR", "test-value")
			t.Setenv("WORDTOONS_IMAGE_MODEL", "imagen-test")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
			if viper.GetString("image.model") != "imagen-test" {
				t.Errorf("image.model = %q, want imagen-test from environment", viper.GetString("image.model"))
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("openai.api_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	tests := []struct {
		name      string
		gemini    string
		google    string
		configKey string
		expected  string
	}{
		{"gemini env first", "gemini-key", "google-key", "cfg", "gemini-key"},
		{"google env second", "", "google-key", "cfg", "google-key"},
		{"config last", "", "", "cfg", "cfg"},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("GOOGLE_API_KEY", tt.google)
			if tt.configKey != "" {
				viper.Set("gemini.api_key", tt.configKey)
			}

			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	if err := cmd.Flags().Set("format", "yaml"); err != nil {
		t.Fatal(err)
	}

	viper.SetConfigType("yaml")
	config := `language: Bengali
output:
  format: json
image:
  timeout: 30s
`
	if err := viper.ReadConfig(strings.NewReader(config)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	ApplyConfig(flags)

	if flags.Format != "yaml" {
		t.Errorf("Format = %q, want explicit flag yaml over config", flags.Format)
	}
	if flags.Language != "Bengali" {
		t.Errorf("Language = %q, want Bengali from config", flags.Language)
	}
	if flags.ImageTimeout != 30*time.Second {
		t.Errorf("ImageTimeout = %v, want 30s", flags.ImageTimeout)
	}
	if flags.TextProvider != "gemini" {
		t.Errorf("TextProvider = %q, want flag default gemini", flags.TextProvider)
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	_ = cmd.Flags().Set("output", "/test/output")
	_ = cmd.Flags().Set("text-provider", "openai")
	_ = cmd.Flags().Set("openai-image-style", "natural")
	_ = cmd.PersistentFlags().Set("log-level", "debug")

	bindFlagsToViper(cmd)

	expected := map[string]string{
		"output.directory":   "/test/output",
		"text.provider":      "openai",
		"image.openai_style": "natural",
		"log.level":          "debug",
	}
	for key, want := range expected {
		if got := viper.GetString(key); got != want {
			t.Errorf("Expected %s to be %s, got %s", key, want, got)
		}
	}
}
