package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lexipick/internal/archive"
	"codeberg.org/snonux/lexipick/internal/cli"
	"codeberg.org/snonux/lexipick/internal/models"
	"codeberg.org/snonux/lexipick/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.ArchiveExports {
		archived, err := archive.ArchiveExports(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive exports: %w", err)
		}
		fmt.Printf("Exports directory archived to: %s\n", archived)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	// Auto-adjust image size for DALL-E 3
	if flags.OpenAIImageModel == "dall-e-3" && !cmd.Flags().Changed("openai-image-size") {
		// If user didn't explicitly set size, use 1024x1024 for DALL-E 3
		flags.OpenAIImageSize = "1024x1024"
		fmt.Printf("Note: Using image size 1024x1024 for DALL-E 3 (use --openai-image-size to override)\n")
	}

	// Create processor
	proc := processor.NewProcessor(flags)

	// Group management flows are exclusive; handle them first
	switch {
	case flags.ListGroups:
		return proc.RunListGroups()
	case flags.ImportGroup != "":
		return proc.RunImportGroup()
	case flags.ExportGroup != "":
		return proc.RunExportGroup()
	case flags.TranslateGroup != "":
		return proc.RunTranslateGroup()
	case flags.IllustrateGroup != "":
		return proc.RunIllustrateGroup()
	case flags.QuizGroup != "":
		return proc.RunQuiz()
	case flags.ImportWords != "":
		return proc.RunImportWords()
	}

	// Headless picking when an article was given
	article := ""
	if len(args) > 0 {
		article = args[0]
	}
	if article != "" || flags.ArticleFile != "" || flags.ArticleURL != "" {
		return proc.RunPick(article)
	}

	// No input provided - launch GUI mode by default
	return proc.RunGUIMode()
}
