package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/catalog"
	"github.com/txn2/catalog-go/pkg/config"
	"github.com/txn2/catalog-go/pkg/transport"
)

type rootOptions struct {
	configPath string
	seedPath   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and mutate metadata catalog assets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "path to a YAML asset fixture to preload")

	cmd.AddCommand(
		newGetCmd(opts),
		newSearchCmd(opts),
		newTagCmd(opts),
		newCertCmd(opts),
		newRestoreCmd(opts),
	)
	return cmd
}

// buildCatalog assembles the catalog. With base_url configured it talks to
// the remote catalog; otherwise it runs against an in-memory transport
// seeded from the fixture file.
func buildCatalog(opts *rootOptions) (*catalog.Catalog, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Logging)

	catalogOpts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithRestoreRetries(cfg.Restore.MaxRetries),
		catalog.WithRestoreInterval(cfg.Restore.Interval),
	}

	var client transport.Client
	if cfg.BaseURL != "" {
		if cfg.APIToken != "" {
			id, idErr := config.IdentityFromToken(cfg.APIToken)
			if idErr != nil {
				return nil, idErr
			}
			logger.Debug("authenticated", "username", id.Username)
		}
		client, err = transport.NewREST(cfg.BaseURL, cfg.APIToken)
		if err != nil {
			return nil, err
		}
	} else {
		mem := transport.NewMemory()
		if opts.seedPath != "" {
			if err := seedFromFile(mem, opts.seedPath); err != nil {
				return nil, err
			}
		}
		catalogOpts = append(catalogOpts, catalog.WithCaches(mem.Caches()))
		client = mem
	}

	cached := transport.NewCached(client, transport.CacheConfig{TTL: cfg.CacheTTL})
	return catalog.New(cached, catalogOpts...), nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <typeName> <qualifiedName>",
		Short: "Fetch one asset by type and qualifiedName",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			a, err := c.GetByQualifiedName(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, a)
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var typeName string
	var activeOnly bool
	var limit int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List assets matching a type filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			q := transport.Query{ActiveOnly: activeOnly, Limit: limit}
			if typeName != "" {
				q = q.WithType(typeName)
			}
			for a, err := range c.Search(cmd.Context(), q) {
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.TypeName, a.ResolveQualifiedName(), a.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "restrict results to one asset type")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "exclude soft-deleted assets")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many results (0 for all)")
	return cmd
}

func newTagCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Attach or detach tags",
	}

	var propagate bool
	add := &cobra.Command{
		Use:   "add <typeName> <qualifiedName> <tag>",
		Short: "Attach a tag to an asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			saved, err := c.AppendTags(cmd.Context(), args[0], args[1],
				asset.NewTag(args[2], propagate, false, false, false))
			if err != nil {
				return err
			}
			return printJSON(cmd, saved)
		},
	}
	add.Flags().BoolVar(&propagate, "propagate", false, "propagate the tag through lineage")

	remove := &cobra.Command{
		Use:   "remove <typeName> <qualifiedName> <tag>",
		Short: "Detach a tag from an asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			saved, err := c.RemoveTag(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, saved)
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func newCertCmd(opts *rootOptions) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "cert <typeName> <qualifiedName> <status>",
		Short: "Set the certificate status of an asset",
		Long:  "Set the certificate status of an asset. Status is one of VERIFIED, DRAFT, DEPRECATED.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			status := asset.CertificateStatus(strings.ToUpper(args[2]))
			switch status {
			case asset.CertificateVerified, asset.CertificateDraft, asset.CertificateDeprecated:
			default:
				return fmt.Errorf("unknown certificate status %q", args[2])
			}
			saved, err := c.SetCertificate(cmd.Context(), args[0], args[1], status, message)
			if err != nil {
				return err
			}
			return printJSON(cmd, saved)
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "certificate status message")
	return cmd
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <typeName> <qualifiedName>",
		Short: "Restore a soft-deleted asset to ACTIVE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCatalog(opts)
			if err != nil {
				return err
			}
			restored, err := c.Restore(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !restored {
				fmt.Fprintln(cmd.OutOrStdout(), "asset already active, nothing to restore")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "restored")
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
