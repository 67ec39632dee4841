package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logFile    string
	verbose    bool
	noPolish   bool
)

var rootCmd = &cobra.Command{
	Use:   "memorite",
	Short: "A memo typewriter for your terminal",
	Long: `MEMO•RITE prints short notes onto paper cards you can drag around a desk,
optionally polishing them first, and shreds them into dust when you are done.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if logFile != "" {
			config.LogFile = logFile
		}
		if noPolish {
			config.APIKey = ""
		}

		logger, closer, err := newLogger(config.LogFile, verbose)
		if err != nil {
			return err
		}
		defer closer.Close()

		if config.APIKey == "" {
			logger.Info("no api key configured, polishing prints raw text")
		}

		p := tea.NewProgram(
			initialModel(config, logger),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.memoriterc)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noPolish, "no-polish", false, "print raw text even when an api key is set")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes to path; with no path logs are discarded because the
// terminal belongs to the UI.
func newLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(expandHome(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, opts)), file, nil
}

func initialModel(config *Config, logger *slog.Logger) model {
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	return model{
		mode:       ModeTyping,
		desk:       NewDesk(rng),
		cards:      make(map[string]*Card),
		typewriter: newTypewriter(),
		polisher:   NewGeminiPolisher(config),
		config:     config,
		logger:     logger,
		rng:        rng,
	}
}
