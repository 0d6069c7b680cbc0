package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "plico",
	Short: "A finite-domain constraint satisfaction solver.",
	Long: "Plico solves finite-domain constraint satisfaction problems by\n" +
		"interleaving AC-3 propagation with backtracking search. The\n" +
		"subcommands run classic demonstration problems.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug tracing of propagation and search")
	rootCmd.AddCommand(sudokuCmd)
	rootCmd.AddCommand(colourCmd)
}

// tracer returns the solve tracer implied by the verbose flag, or nil.
func tracer(cmd *cobra.Command) log.FieldLogger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return log.StandardLogger()
	}
	return nil
}
