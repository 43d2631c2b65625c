package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/anim"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/discovery"
	"github.com/muurk/textwatch/internal/display"
	"github.com/muurk/textwatch/internal/face"
	"github.com/muurk/textwatch/internal/glucose"
	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
	"github.com/muurk/textwatch/internal/transport"
	"github.com/muurk/textwatch/internal/ui"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <config dir>/config.yaml)")
	rootCmd.PersistentFlags().Duration("discover-timeout", discovery.DefaultScanTimeout, "How long to look for a companion over mDNS")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	rootCmd.PersistentFlags().String("log-file", "", "Log file (default <config dir>/textwatch.log)")

	flags := rootCmd.Flags()
	flags.String("companion", "", "Companion WebSocket URL, e.g. ws://192.168.1.20:8080/ws (skips discovery)")
	flags.Bool("debug", false, "Enable up/down keys that move the displayed time")
	flags.String("settings", "", "Settings file (default <config dir>/settings.yaml)")
	flags.Bool("24h", false, "Show the status bar clock in 24 hour format")
	flags.Int("inbox", protocol.MinInboxSize, "Largest inbound message in bytes")
	flags.Int("outbox", protocol.MinOutboxSize, "Largest outbound message in bytes")

	rootCmd.AddCommand(discoverCmd)
}

// discoverCmd lists companions on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List textwatch companions on the network",
	Long: `Browse for textwatch companions using mDNS/DNS-SD.

Every companion that answers within the timeout is listed with the
WebSocket URL the face would connect to.`,
	Example: `  # Browse for 10 seconds (default)
  textwatch discover

  # Quick 3-second browse
  textwatch discover --discover-timeout 3s`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = cfg.DiscoverTimeout

	fmt.Printf("Looking for companions (timeout: %s)...\n\n", scanner.Timeout)

	companions, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(companions) == 0 {
		fmt.Println("No companions found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure textwatch-companion is running with mDNS enabled")
		fmt.Println("  - Check that this machine is on the same network")
		fmt.Println("  - Try increasing --discover-timeout")
		return nil
	}

	fmt.Printf("Found %d companion(s):\n\n", len(companions))
	for i, c := range companions {
		fmt.Printf("%d. %s\n", i+1, c.Instance)
		fmt.Printf("   Host: %s\n", c.Host)
		fmt.Printf("   URL:  %s\n", c.URL())
		if len(c.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", c.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'textwatch --companion <url>' to connect to a specific companion")
	return nil
}

func runFace(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.LogLevel != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer logging.Sync()

	store := config.NewStore(cfg.Settings)
	settings, err := store.Load()
	if err != nil {
		logging.Warn("Failed to load settings, using defaults",
			zap.String("path", store.Path()),
			zap.Error(err),
		)
		settings = config.Defaults()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	url := cfg.Companion
	if url == "" {
		url, err = discoverCompanion(ctx, cfg.DiscoverTimeout)
		if err != nil {
			return err
		}
	}

	// The callbacks below run on the program's update loop, so the values
	// they close over are all set before the first one fires.
	var (
		program *tea.Program
		service *glucose.Service
		watch   *face.Face
	)

	chain := &transport.Chain{}
	client := transport.NewClient(url, chain,
		transport.WithBufferSizes(cfg.Inbox, cfg.Outbox),
		transport.WithPoster(func(fn func()) { ui.Poster(program)(fn) }),
		transport.WithCallbacks(transport.Callbacks{
			Dropped: func(reason transport.Result) {
				logging.Warn("Inbound message dropped", zap.Stringer("reason", reason))
			},
			Failed: func(d *protocol.Dict, err error) {
				if protocol.IsRequest(d) {
					service.DeliveryFailed(err)
				}
			},
			LinkChanged: func(up bool) {
				watch.SetLinkUp(up)
				if up {
					service.MaybeRequest(time.Now())
				}
			},
		}),
	)

	service = glucose.NewService(glucose.NewCache(nil), client)
	trans := display.NewTransitioner(anim.NewScheduler())
	watch = face.New(trans, service,
		face.WithSettings(settings),
		face.With24Hour(cfg.Clock24h),
	)
	syncer := config.NewSyncer(settings, store, watch.ApplySettings)

	chain.Register("glucose", service.HandleMessage)
	chain.Register("settings", syncer.HandleMessage)
	chain.Register("status", func(*protocol.Dict) { watch.RefreshStatus() })

	program = ui.NewProgram(ui.NewModel(watch, service, ui.WithDebug(cfg.Debug)))

	logging.Info("Starting face",
		zap.String("companion", url),
		zap.Strings("observers", chain.Names()),
		zap.Stringer("language", settings.Language),
	)

	done := make(chan error, 1)
	go func() {
		done <- client.Run(ctx)
	}()

	_, runErr := program.Run()
	cancel()
	if err := <-done; err != nil {
		logging.Warn("Companion link stopped", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("face failed: %w", runErr)
	}
	return nil
}

// discoverCompanion finds a companion over mDNS and returns its URL
func discoverCompanion(ctx context.Context, timeout time.Duration) (string, error) {
	fmt.Printf("Looking for a companion (timeout: %s)...\n", timeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout

	c, err := scanner.Find(ctx)
	if err != nil {
		return "", fmt.Errorf("%w\nUse --companion to connect to a companion by address", err)
	}

	logging.Info("Discovered companion", zap.Stringer("companion", c))
	fmt.Printf("Found %s at %s\n", c.Instance, c.URL())
	return c.URL(), nil
}
