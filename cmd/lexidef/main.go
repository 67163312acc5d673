package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lexipick/internal"
	"codeberg.org/snonux/lexipick/internal/dictionary"
)

var (
	// Flags
	cfgFile   string
	endpoint  string
	language  string
	timeout   time.Duration
	batchFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lexidef [word...]",
	Short: "Dictionary lookup for picked words",
	Long: `lexidef looks up words against the free dictionaryapi.dev service
and prints phonetic transcriptions and definitions.

Example:
  lexidef falcon             # Look up a single word
  lexidef falcon heron       # Look up several words
  lexidef --batch words.txt  # Look up words from a file (one per line)`,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lexipick.yaml)")

	// Local flags
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "Dictionary API endpoint (default is dictionaryapi.dev)")
	rootCmd.Flags().StringVar(&language, "language", "en", "Dictionary language code")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Lookup timeout per word")
	rootCmd.Flags().StringVar(&batchFile, "batch", "", "Read words from file (one per line)")

	// Bind flags to viper
	viper.BindPFlag("dictionary.endpoint", rootCmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("dictionary.language", rootCmd.Flags().Lookup("language"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Share the lexipick config so the dictionary settings live in one place
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lexipick")
	}

	// Environment variables
	viper.SetEnvPrefix("LEXIPICK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	// Determine words to look up
	words := args

	if batchFile != "" {
		content, err := os.ReadFile(batchFile)
		if err != nil {
			return fmt.Errorf("failed to read batch file: %w", err)
		}
		for _, line := range splitLines(string(content)) {
			if line = trimSpace(line); line != "" {
				words = append(words, line)
			}
		}
	}

	if len(words) == 0 {
		return fmt.Errorf("please provide a word or use --batch flag")
	}

	config := &dictionary.Config{
		Endpoint: endpoint,
		Language: language,
		Timeout:  timeout,
	}

	// Use config file values if not overridden by flags
	if config.Endpoint == "" {
		config.Endpoint = viper.GetString("dictionary.endpoint")
	}
	if config.Language == "en" && viper.IsSet("dictionary.language") {
		config.Language = viper.GetString("dictionary.language")
	}

	client := dictionary.NewClient(config)
	ctx := context.Background()

	failures := 0
	for i, word := range words {
		if i > 0 {
			fmt.Println()
		}
		if err := printEntry(ctx, client, word); err != nil {
			failures++
		}
	}

	if failures == len(words) {
		return fmt.Errorf("no definition found for any of the %d word(s)", len(words))
	}
	return nil
}

func printEntry(ctx context.Context, client *dictionary.Client, word string) error {
	entry, err := client.Lookup(ctx, word)
	if err != nil {
		var lookupErr *dictionary.LookupError
		if errors.As(err, &lookupErr) && lookupErr.NotFound {
			fmt.Printf("%s: no dictionary entry\n", word)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: lookup for '%s' failed: %v\n", word, err)
		}
		return err
	}

	if entry.Phonetic != "" {
		fmt.Printf("%s %s\n", entry.Word, entry.Phonetic)
	} else {
		fmt.Println(entry.Word)
	}
	for _, def := range entry.Definitions {
		fmt.Printf("  - %s\n", def)
	}
	return nil
}

func splitLines(s string) []string {
	// Simple line splitter
	var lines []string
	current := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func trimSpace(s string) string {
	// Simple trim implementation
	start := 0
	end := len(s)

	// Trim from start
	for start < end && isSpace(rune(s[start])) {
		start++
	}

	// Trim from end
	for end > start && isSpace(rune(s[end-1])) {
		end--
	}

	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
