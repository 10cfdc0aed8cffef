package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"heifconv/internal/codec"
	"heifconv/internal/converter"
	"heifconv/internal/history"
	"heifconv/internal/logging"
	"heifconv/internal/preflight"
	"heifconv/internal/report"
)

// decodeSource decodes conversion inputs. Tests swap it for a PNG decoder.
var decodeSource codec.DecodeFunc = codec.DecodeHEIF

func runConversion(cmd *cobra.Command, ctx *commandContext, token string) error {
	target, err := codec.ParseTarget(token)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := ctx.logger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	inputDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	if err := preflight.Err(preflight.RunAll(cfg, inputDir)); err != nil {
		return err
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another heifconv run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	opts := converter.Options{
		InputDir:     inputDir,
		Target:       target,
		JPEGQuality:  cfg.Convert.JPEGQuality,
		PreserveExif: cfg.Convert.PreserveExif,
		Decode:       decodeSource,
		Reporter:     report.New(cmd.OutOrStdout()),
		Logger:       logger,
	}
	if cfg.History.Enabled {
		store, err := history.Open(cmd.Context(), cfg.History.Path)
		if err != nil {
			logging.WarnWithContext(logger, "history unavailable; run will not be recorded", "history_open_failed",
				logging.String("path", cfg.History.Path),
				logging.Error(err),
			)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	_, err = converter.New(opts).Run(cmd.Context())
	return err
}
