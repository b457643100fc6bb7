package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	statemanagerv1 "github.com/nerrad567/scenario-state-core/api/gen/go/scenario/statemanager/v1"
	"github.com/nerrad567/scenario-state-core/internal/rpc"
	"github.com/nerrad567/scenario-state-core/internal/scenario"
)

// Version information - set at build time via ldflags
var version = "dev"

// errRejected marks a proposal the state manager answered but did not commit.
var errRejected = errors.New("proposal rejected")

func newProposeCmd(opts *options) *cobra.Command {
	var (
		current, source, reason, transitionID string
	)
	cmd := &cobra.Command{
		Use:   "propose <scenario> <target-state>",
		Short: "Propose a scenario transition",
		Long: `Propose moves a scenario to the target state. Pass --from to have the
proposal rejected as stale when the scenario has moved on, and --id to make
a retry safe to repeat.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &statemanagerv1.ProposeStateChangeRequest{
				ResourceType:    scenario.ResourceTypeScenario,
				ResourceName:    args[0],
				CurrentState:    current,
				TargetState:     args[1],
				SourceComponent: source,
				Reason:          reason,
				TransitionId:    transitionID,
				TimestampNs:     time.Now().UnixNano(),
			}
			return withClient(cmd.Context(), opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.ProposeStateChange(ctx, req)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.json {
					if err := printJSON(out, resp); err != nil {
						return err
					}
				} else {
					printProposal(out, args[0], resp)
				}
				if !resp.Accepted {
					return fmt.Errorf("%w: %s", errRejected, resp.ErrorCode)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&current, "from", "", "State the caller believes the scenario is in")
	cmd.Flags().StringVar(&source, "source", "statectl", "Source component recorded with the transition")
	cmd.Flags().StringVar(&reason, "reason", "", "Free-text reason recorded with the transition")
	cmd.Flags().StringVar(&transitionID, "id", "", "Transition id for idempotent retries")
	return cmd
}

func printProposal(w io.Writer, name string, resp *statemanagerv1.ProposeStateChangeResponse) {
	if resp.Accepted {
		verb := "committed"
		if resp.Replayed {
			verb = "replayed"
		}
		fmt.Fprintf(w, "%s %s -> %s (version %d, id %s)\n", verb, name, resp.NewState, resp.Version, resp.TransitionId)
		return
	}
	fmt.Fprintf(w, "rejected %s: %s: %s\n", name, resp.ErrorCode, resp.Message)
	keys := make([]string, 0, len(resp.ErrorDetails))
	for k := range resp.ErrorDetails {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, resp.ErrorDetails[k])
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <scenario>",
		Short: "Show a scenario's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.GetScenario(ctx, &statemanagerv1.GetScenarioRequest{ScenarioName: args[0]})
				if err != nil {
					return err
				}
				if opts.json {
					return printJSON(cmd.OutOrStdout(), resp.GetScenario())
				}
				return printScenarios(cmd.OutOrStdout(), []*statemanagerv1.ScenarioInfo{resp.GetScenario()})
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd.Context(), opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.ListScenarios(ctx, &statemanagerv1.ListScenariosRequest{State: state})
				if err != nil {
					return err
				}
				if opts.json {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				return printScenarios(cmd.OutOrStdout(), resp.Scenarios)
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Only scenarios in this state")
	return cmd
}

func printScenarios(w io.Writer, list []*statemanagerv1.ScenarioInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATE\tVERSION\tUPDATED")
	for _, s := range list {
		updated := "-"
		if s.GetUpdatedAtMs() > 0 {
			updated = time.UnixMilli(s.GetUpdatedAtMs()).UTC().Format(time.RFC3339)
		}
		state := s.GetState()
		if s.GetTerminal() {
			state += " (terminal)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.GetName(), state, s.GetVersion(), updated)
	}
	return tw.Flush()
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int32
	cmd := &cobra.Command{
		Use:   "history <scenario>",
		Short: "Show a scenario's committed transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.GetHistory(ctx, &statemanagerv1.GetHistoryRequest{ScenarioName: args[0], Limit: limit})
				if err != nil {
					return err
				}
				if opts.json {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tFROM\tTO\tSOURCE\tTIME\tID")
				for _, t := range resp.Transitions {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
						t.Version, t.FromState, t.ToState, t.SourceComponent,
						time.UnixMilli(t.TimestampMs).UTC().Format(time.RFC3339), t.TransitionId)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 0, "Most recent entries only (0 for all)")
	return cmd
}

func newGraphCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the scenario state graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd.Context(), opts, func(ctx context.Context, c *rpc.Client) error {
				resp, err := c.GetStateGraph(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.json {
					return printJSON(out, resp)
				}
				fmt.Fprintf(out, "initial: %s\n", resp.Initial)
				fmt.Fprintf(out, "terminal: %s\n", strings.Join(resp.Terminal, ", "))
				for _, e := range resp.Edges {
					fmt.Fprintf(out, "%s -> %s\n", e.From, e.To)
				}
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of statectl",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statectl version %s\n", version)
		},
	}
}
