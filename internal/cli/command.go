package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordtoons/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordtoons [word]",
		Short: "AI word visualizer with cartoon illustrations",
		Long: `wordtoons looks up the opposite, a synonym and a Gen-Z slang
equivalent of a word, translates it into an Indian language with a
pronunciation guide, and draws a cartoon for each of the four words.

Examples:
  wordtoons                          # Launch interactive GUI (default)
  wordtoons happy                    # Print the cards and save the images
  wordtoons happy -l Tamil -f json   # Tamil translation as JSON
  wordtoons --batch words.txt        # Process multiple words from file`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env file is fine; keys may come from the environment
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultOutputDir is where CLI results are saved unless --output is given
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wordtoons"
	}
	return filepath.Join(home, ".local", "state", "wordtoons", "results")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordtoons.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Output directory for generated images")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Translation language (Hindi, Marathi, Bengali, Tamil, Telugu, Gujarati, Kannada, Malayalam, Punjabi, Urdu, Odia, Assamese)")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (one per line, optionally 'word = Language')")
	cmd.Flags().BoolVar(&flags.SkipSave, "skip-save", false, "Do not write images to the output directory")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available text and image models for the configured API keys")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the output directory into a timestamped archive and exit")

	// Provider flags
	cmd.Flags().StringVar(&flags.TextProvider, "text-provider", flags.TextProvider, "Text provider: gemini or openai")
	cmd.Flags().StringVar(&flags.TextModel, "text-model", "", "Text model (default: gemini-2.5-flash or gpt-4o-mini)")
	cmd.Flags().DurationVar(&flags.TextTimeout, "text-timeout", flags.TextTimeout, "Timeout for the related words request")
	cmd.Flags().StringVar(&flags.ImageProvider, "image-provider", flags.ImageProvider, "Image provider: gemini or openai")
	cmd.Flags().StringVar(&flags.ImageModel, "image-model", "", "Image model (default: imagen-4.0-generate-001 or dall-e-3)")
	cmd.Flags().DurationVar(&flags.ImageTimeout, "image-timeout", flags.ImageTimeout, "Timeout for each image request")

	// OpenAI image flags
	cmd.Flags().StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024 (dall-e-3: also 1024x1792, 1792x1024)")
	cmd.Flags().StringVar(&flags.OpenAIImageQuality, "openai-image-quality", flags.OpenAIImageQuality, "Image quality: standard or hd (dall-e-3 only)")
	cmd.Flags().StringVar(&flags.OpenAIImageStyle, "openai-image-style", flags.OpenAIImageStyle, "Image style: natural or vivid (dall-e-3 only)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps flag names to their configuration keys
var viperKeys = map[string]string{
	"log-level":            "log.level",
	"output":               "output.directory",
	"format":               "output.format",
	"language":             "language",
	"text-provider":        "text.provider",
	"text-model":           "text.model",
	"text-timeout":         "text.timeout",
	"image-provider":       "image.provider",
	"image-model":          "image.model",
	"image-timeout":        "image.timeout",
	"openai-image-size":    "image.openai_size",
	"openai-image-quality": "image.openai_quality",
	"openai-image-style":   "image.openai_style",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range viperKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}

// ApplyConfig copies configuration values into flags. Explicit flags win,
// then environment and config file, then flag defaults.
func ApplyConfig(flags *Flags) {
	flags.LogLevel = viper.GetString("log.level")
	flags.OutputDir = viper.GetString("output.directory")
	flags.Format = viper.GetString("output.format")
	flags.Language = viper.GetString("language")
	flags.TextProvider = viper.GetString("text.provider")
	flags.TextModel = viper.GetString("text.model")
	flags.TextTimeout = viper.GetDuration("text.timeout")
	flags.ImageProvider = viper.GetString("image.provider")
	flags.ImageModel = viper.GetString("image.model")
	flags.ImageTimeout = viper.GetDuration("image.timeout")
	flags.OpenAIImageSize = viper.GetString("image.openai_size")
	flags.OpenAIImageQuality = viper.GetString("image.openai_quality")
	flags.OpenAIImageStyle = viper.GetString("image.openai_style")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordtoons" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordtoons")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDTOONS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("gemini.api_key")
}
