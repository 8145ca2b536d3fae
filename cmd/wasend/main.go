// Package main provides the wasend CLI, which sends WhatsApp messages
// through WhatsApp Web from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/entrhq/wasend/pkg/config"
	"github.com/entrhq/wasend/pkg/logging"
	"github.com/entrhq/wasend/pkg/whatsapp"
)

const version = "0.1.0"

// sender is the part of whatsapp.Client the commands use.
type sender interface {
	SetBrowser(name string) error
	SetWait(seconds float64) error
	Send(msg whatsapp.Message) error
	Close() error
}

// flags holds the persistent command line flags.
type flags struct {
	ConfigFile string
	Browser    string
	Wait       string
	Headless   bool
	Verbose    bool
}

var (
	rootFlags flags

	// newSender builds the client for a command; replaced in tests
	newSender = defaultSender

	active    sender
	activeLog io.Closer
	activeMu  sync.Mutex
)

var rootCmd = &cobra.Command{
	Use:   "wasend",
	Short: "Send WhatsApp messages through WhatsApp Web",
	Long: `wasend drives a browser logged in to WhatsApp Web and sends text,
image and audio messages to phone numbers or group invite codes.

The browser profile of the selected browser is reused, so a QR code scan
is only needed once. When WhatsApp Web asks for a login, wasend waits for
the login window (20s by default) before giving up.

Element lookups wait up to --wait seconds (10 by default) for WhatsApp Web
to render after each navigation. Raise it on slow connections; with 0 the
page is queried before the chat view exists and sends fail.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.ConfigFile, "config", "", "path to config file (default ~/.wasend/config.yaml)")
	pf.StringVarP(&rootFlags.Browser, "browser", "b", "", "browser to use: chrome, edge or firefox")
	pf.StringVarP(&rootFlags.Wait, "wait", "w", "", "implicit wait for element lookups, in seconds")
	pf.BoolVar(&rootFlags.Headless, "headless", false, "run the browser without a window")
	pf.BoolVarP(&rootFlags.Verbose, "verbose", "v", false, "echo debug logs to stderr")

	rootCmd.AddCommand(textCmd, imageCmd, audioCmd, batchCmd, configCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wasend v%s\n", version)
	},
}

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		closeActive()
		os.Exit(130)
	}()

	err := rootCmd.Execute()
	closeActive()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootFlags.ConfigFile)
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("browser") {
		cfg.Browser = rootFlags.Browser
	}
	if pf.Changed("wait") {
		seconds, err := whatsapp.ParseWait(rootFlags.Wait)
		if err != nil {
			return nil, err
		}
		cfg.WaitSeconds = seconds
	}
	if pf.Changed("headless") {
		cfg.Headless = rootFlags.Headless
	}
	if rootFlags.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaultSender(cfg *config.Config) (sender, error) {
	logger, err := logging.NewLogger("wasend")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)
	if rootFlags.Verbose {
		logger.SetEcho(os.Stderr)
	}
	activeMu.Lock()
	activeLog = logger
	activeMu.Unlock()

	opts := append(cfg.ClientOptions(), whatsapp.WithLogger(logger))
	return whatsapp.New(opts...)
}

// openSender builds a client, selects the browser and applies the wait.
func openSender(cmd *cobra.Command) (sender, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	s, err := newSender(cfg)
	if err != nil {
		return nil, err
	}
	activeMu.Lock()
	active = s
	activeMu.Unlock()

	if err := s.SetBrowser(cfg.Browser); err != nil {
		return nil, err
	}
	if err := s.SetWait(cfg.WaitSeconds); err != nil {
		return nil, err
	}
	return s, nil
}

// closeActive closes the client, then the log file it writes to.
func closeActive() {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		if err := active.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		active = nil
	}
	if activeLog != nil {
		if err := activeLog.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close log: %v\n", err)
		}
		activeLog = nil
	}
}
