package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codeexplainer",
	Short: "AI-powered code explainer and optimizer",
	Long: `codeexplainer - Explain source code and suggest optimizations with a language model.

Serves a web form where you pick a language (Python, JavaScript, Java, C++),
paste code and get back a plain-language explanation and optimization
suggestions. The OpenAI credential is read from OPENAI_API_KEY or a .env file.`,
	SilenceUsage: true,
	RunE:         runServe, // Default to serve command behavior
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML configuration file")
	addServeFlags(rootCmd)
}
