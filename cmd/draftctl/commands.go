package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"nfl-draft-mcp/internal/consensus"
	"nfl-draft-mcp/internal/draftstate"
	"nfl-draft-mcp/internal/engine"
	"nfl-draft-mcp/internal/model"
	"nfl-draft-mcp/internal/poller"
	"nfl-draft-mcp/internal/roster"
)

func newStatusCommand(cc *commandContext) *cobra.Command {
	var draftID string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current pick, round, and whose turn it is",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cc.newSession(cmd.Context(), draftID, true)
			if err != nil {
				return err
			}
			printStatus(cmd, session)
			return nil
		},
	}
	cmd.Flags().StringVar(&draftID, "draft", "", "draft id at the provider")
	return cmd
}

func newNeedsCommand(cc *commandContext) *cobra.Command {
	var draftID string
	var teamID int
	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Show a team's positional counts and open deficits",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cc.newSession(cmd.Context(), draftID, true)
			if err != nil {
				return err
			}
			id, err := pickTeamID(teamID, session)
			if err != nil {
				return err
			}
			need := roster.Needs(id, session.Picks(), cc.reg.Player, cc.cfg.Targets())

			rows := make([][]string, 0, len(model.Positions))
			for _, pos := range model.Positions {
				rows = append(rows, []string{
					string(pos),
					strconv.Itoa(need.Counts[pos]),
					strconv.Itoa(need.Targets[pos]),
					strconv.Itoa(need.Deficits[pos]),
				})
			}
			cmd.Println(renderTable(
				[]string{"POS", "HAVE", "TARGET", "NEED"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&draftID, "draft", "", "draft id at the provider")
	cmd.Flags().IntVar(&teamID, "team", 0, "team id (default: operator's team)")
	return cmd
}

func newRecommendCommand(cc *commandContext) *cobra.Command {
	var draftID string
	var teamID, limit int
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the available players for the next pick",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := cc.newSession(cmd.Context(), draftID, true)
			if err != nil {
				return err
			}
			id, err := pickTeamID(teamID, session)
			if err != nil {
				return err
			}
			recs, err := cc.recommend(cmd.Context(), session, id)
			if err != nil {
				return err
			}
			if len(recs) > limit {
				recs = recs[:limit]
			}
			cmd.Println(renderRecommendations(recs))
			return nil
		},
	}
	cmd.Flags().StringVar(&draftID, "draft", "", "draft id at the provider")
	cmd.Flags().IntVar(&teamID, "team", 0, "team id (default: operator's team)")
	cmd.Flags().IntVar(&limit, "limit", 10, "how many recommendations")
	return cmd
}

func newWatchCommand(cc *commandContext) *cobra.Command {
	var draftID string
	var limit int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the draft and print recommendations as picks come in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session, err := cc.newSession(ctx, draftID, true)
			if err != nil {
				return err
			}
			printStatus(cmd, session)

			p := poller.New(session, func(ctx context.Context) (draftstate.ProviderPayload, error) {
				return cc.client.DraftPayload(ctx, draftID, true)
			}, cc.cfg.PollInterval)
			p.OnCycle = func(s *draftstate.Session, appended int) {
				if appended == 0 {
					return
				}
				printStatus(cmd, s)
				if s.IsOperatorTurn() != draftstate.TurnYes {
					return
				}
				recs, err := cc.recommend(ctx, s, s.Order.OperatorTeamID)
				if err != nil {
					cmd.PrintErrln("recommendations unavailable:", err)
					return
				}
				if len(recs) > limit {
					recs = recs[:limit]
				}
				cmd.Println(renderRecommendations(recs))
			}

			err = p.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&draftID, "draft", "", "draft id at the provider")
	cmd.Flags().IntVar(&limit, "limit", 5, "recommendations to show on your turn")
	return cmd
}

// recommend builds the engine inputs from the store and session.
func (c *commandContext) recommend(ctx context.Context, session *draftstate.Session, teamID int) ([]engine.Recommendation, error) {
	observations, err := c.st.Observations(ctx)
	if err != nil {
		return nil, err
	}
	ranking := make([]consensus.Observation, 0, len(observations))
	adp := make(map[int]float64)
	for _, o := range observations {
		if o.Source == "adp" {
			adp[o.PlayerID] = float64(o.Rank)
			continue
		}
		ranking = append(ranking, o)
	}

	need := roster.Needs(teamID, session.Picks(), c.reg.Player, c.cfg.Targets())
	return engine.Recommend(
		c.reg.Available(session.DraftedIDs()),
		consensus.Aggregate(ranking),
		need,
		engine.PickContext{PickNumber: session.NextTurn().PickNumber, ADP: adp},
		c.cfg.Weights,
	), nil
}

func pickTeamID(flagValue int, session *draftstate.Session) (int, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	if !session.Order.OperatorResolved {
		return 0, fmt.Errorf("--team is required: operator team is unknown for this draft")
	}
	return session.Order.OperatorTeamID, nil
}

func printStatus(cmd *cobra.Command, session *draftstate.Session) {
	turn := session.NextTurn()
	if turn.Complete {
		cmd.Printf("draft complete after %d picks\n", session.TotalPicks())
		return
	}
	cmd.Printf("pick %d (round %d, slot %d) -> team %d | your turn: %s\n",
		turn.PickNumber, turn.Round, turn.Slot, turn.TeamID, session.IsOperatorTurn())
}

func renderRecommendations(recs []engine.Recommendation) string {
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		mean := "-"
		if !r.Unranked {
			mean = strconv.FormatFloat(r.MeanRank, 'f', 1, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Name,
			string(r.Position),
			r.Team,
			mean,
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			strings.Join(r.Reasons, "; "),
		})
	}
	return renderTable(
		[]string{"#", "PLAYER", "POS", "TEAM", "RANK", "SCORE", "WHY"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}
