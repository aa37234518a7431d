package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/flix/internal/bookmark"
	"github.com/mmcdole/flix/internal/catalog"
	"github.com/mmcdole/flix/internal/config"
	"github.com/mmcdole/flix/internal/discover"
	"github.com/mmcdole/flix/internal/domain"
	"github.com/mmcdole/flix/internal/logging"
	"github.com/mmcdole/flix/internal/pipeline"
	"github.com/mmcdole/flix/internal/store"
	"github.com/mmcdole/flix/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

const plainTimeout = 30 * time.Second

func main() {
	var showVersion, plain bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&plain, "plain", false, "print the listing as text instead of starting the UI")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: flix [-v] [-plain] [category]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Categories: %s\n\n", strings.Join(domain.CategoryNames(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("flix %s\n", Version)
		return
	}

	category := domain.CategoryPopularMovies
	if name := flag.Arg(0); name != "" {
		c, ok := domain.ParseCategory(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", name)
			flag.Usage()
			os.Exit(2)
		}
		category = c
	}

	if !plain && !term.IsTerminal(int(os.Stdout.Fd())) {
		plain = true
	}

	if err := run(category, plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(category domain.Category, plain bool) error {
	loader := config.NewLoader("")
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = logging.NullLogger(), io.NopCloser(nil)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting flix", "version", Version)

	dirty := false
	if !cfg.IsConfigured() {
		if plain {
			return fmt.Errorf("%w: set FLIX_CATALOG_API_KEY or run flix in a terminal", domain.ErrNotConfigured)
		}
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
		dirty = true
	}
	if cfg.EnsureUserID() {
		dirty = true
	}
	if dirty {
		if err := loader.Save(cfg); err != nil {
			logger.Warn("failed to save config", "error", err)
		}
	}

	client, err := catalog.NewClient(catalog.Options{
		BaseURL:      cfg.Catalog.BaseURL,
		APIKey:       cfg.Catalog.APIKey,
		ImageBaseURL: cfg.Catalog.ImageBaseURL,
		Timeout:      cfg.Catalog.Timeout,
	}, catalog.NewCache(cfg.Catalog.CacheTTL, cfg.Catalog.CacheMaxEntries), logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	if plain {
		return printListing(client, category, os.Stdout)
	}

	bookmarks, err := store.NewBookmarkStore(cfg.Bookmarks.Path)
	if err != nil {
		logger.Warn("bookmarks will not persist", "path", cfg.Bookmarks.Path, "error", err)
		bookmarks, _ = store.NewBookmarkStore("")
	}
	defer bookmarks.Close()

	bookmarkSvc := bookmark.NewService(nil, bookmarks, logger)
	discoverSvc := discover.NewService(client, bookmarkSvc, pipeline.New(cfg.Catalog.Language), logger)

	model := tui.NewModel(discoverSvc, client, cfg.User.ID, cfg.Search.Debounce, logger)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printListing writes the first page of category as plain text
func printListing(client *catalog.Client, category domain.Category, w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), plainTimeout)
	defer cancel()

	page, err := client.FetchListing(ctx, category, 1)
	if err != nil {
		return fmt.Errorf("failed to fetch listing: %w", err)
	}

	for _, item := range page.Results {
		fmt.Fprintf(w, "%-50s  %-4s  %s\n",
			item.DisplayTitle(),
			catalog.YearFromDate(item.DisplayDate()),
			catalog.FormatRating(item.VoteAverage))
	}
	fmt.Fprintf(w, "\npage %d of %d (%d results)\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}

// runSetupFlow prompts for the catalog API key when none is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Flix!")
	fmt.Println()
	fmt.Println("Flix needs a TMDB API key. Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter your API key: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		key := strings.TrimSpace(input)
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}
		cfg.Catalog.APIKey = key
		break
	}

	fmt.Println()
	fmt.Println("✓ API key set")
	fmt.Println()
	return nil
}
