package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/shoko75/audioshelf/internal/browse"
	"github.com/shoko75/audioshelf/internal/config"
	"github.com/shoko75/audioshelf/internal/log"
	"github.com/shoko75/audioshelf/internal/source/listennotes"
	"github.com/shoko75/audioshelf/internal/store"
	"github.com/shoko75/audioshelf/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("audioshelf %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting audioshelf", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	favorites, err := store.NewFavoriteStore(config.DefaultDataPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to open favorites store: %w", err)
	}
	defer favorites.Close()

	catalog := listennotes.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.GenreID, cfg.API.Region, logger)

	repo := browse.NewRepository(catalog, favorites, logger)
	list := browse.NewListState(repo, cfg.Browse.TriggerThreshold, logger)

	model := tui.NewModel(list, cfg.UI.ShowDetails)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no API key is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to audioshelf!")
	fmt.Println()
	fmt.Println("Browsing the catalog needs a Listen API key")
	fmt.Println("(free at https://www.listennotes.com/api/).")
	fmt.Println()

	for {
		fmt.Print("Enter your API key (input hidden): ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.API.Key = apiKey
		break
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run audioshelf again to start browsing.")

	return nil
}
