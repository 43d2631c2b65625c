// Textwatch is a word clock face for the terminal.
//
// It spells the time out in words, one phrase per row, and slides rows in
// and out as the words change. A companion service on the local network
// supplies glucose readings and display settings over a WebSocket link.
//
// Usage:
//
//	textwatch [command] [flags]
//
// Running without arguments starts the face, discovering the companion
// over mDNS unless --companion is given.
// See 'textwatch --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/textwatch/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "textwatch",
	Short: "Word clock face with glucose readings",
	Long: `A word clock face that tells the time in words.

Rows of text slide out to the left and in from the right when the words
change. Tapping (space or t) shows the date for about a minute. Glucose
readings and display settings come from a textwatch companion on the
local network.

If no command is specified, the face starts automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFace(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Line("textwatch"))
	},
}
