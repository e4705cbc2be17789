package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"cocomig/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scan result cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached scan result",
	Args:  cobra.NoArgs,
	RunE:  runCacheClean,
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cacheDir(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheDirCmd)
}

func cacheDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Root().PersistentFlags().GetString("cache-dir")
	if err != nil || dir != "" {
		return dir, err
	}
	return driver.DefaultCacheDir()
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	dir, err := cacheDir(cmd)
	if err != nil {
		return errors.Errorf("cache: %w", err)
	}
	cache, err := driver.OpenCache(dir)
	if err != nil {
		return errors.Errorf("cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return errors.Errorf("cache: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "removed cached results in %s\n", cache.Dir())
	}
	return nil
}
