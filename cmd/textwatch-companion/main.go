// Textwatch-companion serves glucose readings and settings to textwatch faces.
//
// It accepts WebSocket connections from faces, answers their data requests
// with the latest reading, and pushes new readings and settings as they are
// posted to its HTTP API. The service advertises itself over mDNS so faces
// can find it without an address.
//
// Usage:
//
//	textwatch-companion serve [flags]
//
// See 'textwatch-companion serve --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/textwatch/internal/companion"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/discovery"
	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/version"
	"github.com/muurk/textwatch/internal/words"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "textwatch-companion",
	Short: "Textwatch Companion Service",
	Long: `A companion service for textwatch faces.

Faces connect over WebSocket and receive glucose readings and display
settings. Readings are posted to the HTTP API:

  POST /glucose   {"value": 120, "trend": 2}
  PUT  /settings  {"invert": false, "text_align": "center", "lang": "en_US"}`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	addr       string
	wsPath     string
	noMDNS     bool
	instance   string
	logLevel   string
	captureDir string
	lang       string
	align      string
	invert     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the companion service",
	Long: `Start the companion HTTP and WebSocket service.

The service is advertised as ` + discovery.ServiceType + ` over mDNS unless
--no-mdns is given. Faces that cannot use mDNS connect with
--companion ws://<host>:<port>` + discovery.DefaultPath + `.

To capture face messages for protocol analysis, use the --capture-dir flag
to specify a directory where message logs will be written.`,
	Example: `  # Start on port 8080 and advertise over mDNS
  textwatch-companion serve

  # Custom port without mDNS
  textwatch-companion serve --addr :9000 --no-mdns

  # Start with message capture enabled
  textwatch-companion serve --capture-dir ./captures --log-level debug

  # Initial settings for connecting faces
  textwatch-companion serve --lang de --align left --invert`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&wsPath, "path", discovery.DefaultPath, "WebSocket path")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Do not advertise over mDNS")
	serveCmd.Flags().StringVar(&instance, "instance", "textwatch-companion", "mDNS instance name")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&captureDir, "capture-dir", "", "Directory to write message captures (disabled if not specified)")
	serveCmd.Flags().StringVar(&lang, "lang", words.DefaultLanguage.String(), "Initial face language (ca, de, en_GB, en_US, es, fr, no, sv)")
	serveCmd.Flags().StringVar(&align, "align", config.AlignCenter.String(), "Initial text alignment (left, center, right)")
	serveCmd.Flags().BoolVar(&invert, "invert", false, "Initial color inversion")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, ""); err != nil {
		return err
	}

	settings := config.Defaults()
	settings.Invert = invert
	var ok bool
	if settings.Language, ok = words.ParseLanguage(lang); !ok {
		return fmt.Errorf("unknown language: %s", lang)
	}
	if settings.TextAlign, ok = config.ParseAlign(align); !ok {
		return fmt.Errorf("unknown alignment: %s", align)
	}

	var opts []companion.HubOption
	if captureDir != "" {
		capture, err := companion.NewCapture(captureDir)
		if err != nil {
			return err
		}
		fmt.Printf("Capturing messages to %s\n", capture.Path())
		opts = append(opts, companion.WithCapture(capture))
	}

	hub := companion.NewHub(settings, opts...)
	srv := companion.New(&companion.Config{
		Addr:      addr,
		Path:      wsPath,
		Advertise: !noMDNS,
		Instance:  instance,
	}, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <capture.jsonl>",
	Short: "Decode a message capture",
	Long: `Decode every message in a capture written by 'serve --capture-dir'.

Each message is printed with its tuples and a hex dump, followed by a
summary of requests, readings and settings seen.`,
	Example: `  textwatch-companion analyze captures/capture-20251121-030905.jsonl`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := companion.ReadCapture(f)
	if err != nil {
		return fmt.Errorf("failed to read capture: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Textwatch Message Analyzer ===\n")
	fmt.Fprintf(out, "File: %s\n", args[0])
	fmt.Fprintf(out, "Messages: %d\n\n", len(records))

	for _, rec := range records {
		companion.Analyze(out, rec)
	}

	s := companion.Summarize(records)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  face->companion: %d\n", s.Inbound)
	fmt.Fprintf(out, "  companion->face: %d\n", s.Outbound)
	fmt.Fprintf(out, "  requests:        %d\n", s.Requests)
	fmt.Fprintf(out, "  readings:        %d\n", s.Readings)
	fmt.Fprintf(out, "  settings:        %d\n", s.Settings)
	if s.Undecoded > 0 {
		fmt.Fprintf(out, "  undecoded:       %d\n", s.Undecoded)
	}
	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Line("textwatch-companion"))
	},
}
