package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nfl-draft-mcp/internal/config"
	"nfl-draft-mcp/internal/draftstate"
	"nfl-draft-mcp/internal/fetch"
	"nfl-draft-mcp/internal/registry"
	"nfl-draft-mcp/internal/store"
)

type commandContext struct {
	configFlag string

	cfg    *config.Config
	st     *store.Store
	client *fetch.Client
	reg    *registry.Registry
}

// ensure lazily opens config, store, and provider client; commands share
// one instance per invocation.
func (c *commandContext) ensure(ctx context.Context) error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configFlag)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	players, err := st.Players(ctx)
	if err != nil {
		_ = st.Close()
		return err
	}

	client := fetch.NewClient(store.NewJSONCache(cfg.DataRoot), cfg.ProviderBaseURL)
	client.HTTP.Timeout = cfg.FetchTimeout
	client.Retries = cfg.FetchRetries
	client.RetryBackoff = cfg.RetryBackoff

	c.cfg = cfg
	c.st = st
	c.client = client
	c.reg = registry.New(players)
	return nil
}

func (c *commandContext) close() {
	if c.st != nil {
		_ = c.st.Close()
	}
}

// newSession fetches the draft payload once and builds a synced session.
func (c *commandContext) newSession(ctx context.Context, draftID string, force bool) (*draftstate.Session, error) {
	if draftID == "" {
		return nil, fmt.Errorf("--draft is required")
	}
	payload, err := c.client.DraftPayload(ctx, draftID, force)
	if err != nil {
		return nil, err
	}
	session := draftstate.NewSession(draftstate.ResolveOrder(payload.Info, c.cfg.OperatorUserID))
	session.Ingest(payload.Picks)
	return session, nil
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "draftctl",
		Short:         "Fantasy snake-draft assistant CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.ensure(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cc.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFlag, "config", "c", "", "configuration file path")

	rootCmd.AddCommand(newStatusCommand(cc))
	rootCmd.AddCommand(newNeedsCommand(cc))
	rootCmd.AddCommand(newRecommendCommand(cc))
	rootCmd.AddCommand(newWatchCommand(cc))

	return rootCmd
}
