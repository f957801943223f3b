package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
	"github.com/saborshop/storefront/internal/infrastructure/localstore"
	"github.com/saborshop/storefront/internal/infrastructure/mealdb"
	"github.com/saborshop/storefront/internal/pkg/config"
	"github.com/saborshop/storefront/internal/tui"
	"github.com/saborshop/storefront/pkg/logger"
)

const fallbackColumns = 120

type browseOptions struct {
	category string
	width    int
	storage  string
	logFile  string
}

func newBrowseCmd() *cobra.Command {
	var opts browseOptions
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return browse(cmd.Context(), config.Load(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.category, "category", "c", domain.DefaultCategory, `category to open ("all" merges the featured ones)`)
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "viewport width in pixels (default: terminal columns x 8)")
	cmd.Flags().StringVar(&opts.storage, "storage", "", "cart storage file (default: user config dir)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file (default: next to the storage file)")
	return cmd
}

func browse(ctx context.Context, cfg *config.Config, opts browseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	storagePath := opts.storage
	if storagePath == "" {
		p, err := localstore.DefaultPath()
		if err != nil {
			return err
		}
		storagePath = p
	}
	logPath := opts.logFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(storagePath), "browse.log")
	}
	logOut, err := logger.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logOut.Close()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Output: logOut, Component: "browse"})

	store, err := localstore.Open(storagePath)
	if err != nil {
		return err
	}

	width := opts.width
	var tuiOpts []tui.Option
	if width > 0 {
		tuiOpts = append(tuiOpts, tui.WithFixedWidth())
	} else {
		width = detectColumns() * tui.PixelsPerColumn
	}

	catalog := service.NewCatalogService(mealdb.New(cfg.MealDB.BaseURL, nil), log)
	sf := service.NewStorefront(domain.Session{}, catalog, store, domain.Classify(width), log)
	if err := sf.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("cart restore failed")
	}

	model := tui.New(ctx, sf, tui.Categories(), opts.category, log, tuiOpts...)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("terminal storefront: %w", err)
	}
	return nil
}

// detectColumns returns the terminal width in columns.
func detectColumns() int {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stdin.Fd()} {
		if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w
		}
	}
	return fallbackColumns
}
