// Command apyxlc wires the parser, builder, validator and generator
// contracts into a runnable command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "apyxlc",
	Short: "Cross-compile an API model between IDLs",
	Long: `apyxlc parses one or more source chunks with a named parser, merges
and validates them into a single model, and runs a named generator against
a view of the result.`,
	RunE: runGenerate,
}

var (
	flagInput          string
	flagParser         string
	flagParserConfig   string
	flagGenerator      string
	flagOutputRoot     string
	flagOutputs        []string
	flagStdouts        []string
	flagPreValidation  bool
)

func init() {
	rootCmd.Flags().StringVar(&flagInput, "input", "", "glob matching chunk source files")
	rootCmd.Flags().StringVar(&flagParser, "parser", "jsonidl", "registered parser name")
	rootCmd.Flags().StringVar(&flagParserConfig, "parser-config", "", "path to parser config JSON")
	rootCmd.Flags().StringVar(&flagGenerator, "generator", "dbg", "registered generator name")
	rootCmd.Flags().StringVar(&flagOutputRoot, "output-root", "", "root directory for file output")
	rootCmd.Flags().StringArrayVar(&flagOutputs, "output", nil, "name=subdir output mapping, repeatable")
	rootCmd.Flags().StringArrayVar(&flagStdouts, "stdout", nil, "chunk name to echo to stdout, repeatable")
	rootCmd.Flags().BoolVar(&flagPreValidation, "pre-validation-print", false, "log the merged tree before validation")

	_ = rootCmd.MarkFlagRequired("input")
}
