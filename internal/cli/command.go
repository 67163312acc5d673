package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lexipick/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lexipick [article-file]",
		Short: "Article Word Picker for vocabulary study",
		Long: `lexipick tokenizes an article, lets you pick the words and phrases
worth studying, and enriches the picks with dictionary definitions,
translations and illustrations.

Examples:
  lexipick                                     # Launch interactive GUI (default)
  lexipick --article news.txt --select falcon --select nest --export picks.json
  lexipick --url https://example.com/story --select falcon --define
  lexipick --import-words words.txt --save-group "Unit 3"
  lexipick --quiz 01JC4YV0PR4C8`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Default state directory matches GUI mode
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(home, ".local", "state", "lexipick")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lexipick.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", filepath.Join(stateDir, "exports"), "Output directory for exports and illustrations")
	cmd.Flags().StringVar(&flags.GroupDB, "group-db", filepath.Join(stateDir, "groups.db"), "Path to the group database")

	cmd.Flags().StringVarP(&flags.ArticleFile, "article", "a", "", "Read article text from a plain text file")
	cmd.Flags().StringVarP(&flags.ArticleURL, "url", "u", "", "Fetch article text from a URL")
	cmd.Flags().StringArrayVar(&flags.SelectWords, "select", nil, "Select a word from the article (repeatable)")
	cmd.Flags().StringArrayVar(&flags.Phrases, "phrase", nil, "Merge adjacent selected words into a phrase, e.g. \"green tea\" (repeatable)")

	cmd.Flags().BoolVar(&flags.Define, "define", false, "Look up dictionary definitions for the selected words")
	cmd.Flags().StringVar(&flags.ExportFile, "export", "", "Write selected words and phrases to a JSON file")
	cmd.Flags().StringVar(&flags.SaveGroup, "save-group", "", "Save selected words and phrases to a named group")
	cmd.Flags().BoolVar(&flags.ListGroups, "list-groups", false, "List saved groups")
	cmd.Flags().StringVar(&flags.ImportGroup, "import-group", "", "Import a group from a JSON file")
	cmd.Flags().StringVar(&flags.ExportGroup, "export-group", "", "Export the group with the given ID to JSON")
	cmd.Flags().StringVar(&flags.QuizGroup, "quiz", "", "Run a translation quiz over the group with the given ID")
	cmd.Flags().StringVar(&flags.TranslateGroup, "translate-group", "", "Fill in missing translations for the group with the given ID")
	cmd.Flags().StringVar(&flags.IllustrateGroup, "illustrate", "", "Generate illustrations for the group with the given ID")
	cmd.Flags().StringVar(&flags.ImportWords, "import-words", "", "Import words from a file into the group named by --save-group")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.ArchiveExports, "archive", false, "Archive the export output directory")

	// Dictionary flags
	cmd.Flags().StringVar(&flags.DictEndpoint, "dict-endpoint", "", "Override the dictionary API endpoint")
	cmd.Flags().StringVar(&flags.DictLanguage, "dict-language", flags.DictLanguage, "Dictionary language code")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.TargetLanguage, "target-language", flags.TargetLanguage, "Language translations are written in")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for translations")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for translations")

	// OpenAI Image Generation flags
	cmd.Flags().StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024 (dall-e-3: also 1024x1792, 1792x1024)")
	cmd.Flags().StringVar(&flags.OpenAIImageQuality, "openai-image-quality", flags.OpenAIImageQuality, "Image quality: standard or hd (dall-e-3 only)")
	cmd.Flags().StringVar(&flags.OpenAIImageStyle, "openai-image-style", flags.OpenAIImageStyle, "Image style: natural or vivid (dall-e-3 only)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("groups.database", cmd.Flags().Lookup("group-db"))
	viper.BindPFlag("dictionary.endpoint", cmd.Flags().Lookup("dict-endpoint"))
	viper.BindPFlag("dictionary.language", cmd.Flags().Lookup("dict-language"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.target_language", cmd.Flags().Lookup("target-language"))
	viper.BindPFlag("translation.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", cmd.Flags().Lookup("gemini-model"))
	// Bind OpenAI image flags
	viper.BindPFlag("image.openai_model", cmd.Flags().Lookup("openai-image-model"))
	viper.BindPFlag("image.openai_size", cmd.Flags().Lookup("openai-image-size"))
	viper.BindPFlag("image.openai_quality", cmd.Flags().Lookup("openai-image-quality"))
	viper.BindPFlag("image.openai_style", cmd.Flags().Lookup("openai-image-style"))
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

		// Search config in home directory with name ".lexipick" (without extension)
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

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
