package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/nerrad567/scenario-state-core/internal/rpc"
)

const (
	defaultAddr    = "127.0.0.1:47003"
	defaultTimeout = 5 * time.Second
)

// options are the persistent flags shared by every command.
type options struct {
	addr    string
	timeout time.Duration
	json    bool
}

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "statectl",
		Short: "statectl talks to a scenario state core",
		Long: `statectl proposes scenario transitions and inspects scenario state
through the StateManager gRPC service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addr := os.Getenv("STATECORE_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", addr, "StateManager gRPC address (env STATECORE_ADDR)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "Deadline for each call")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print responses as JSON")

	root.AddCommand(
		newProposeCmd(opts),
		newGetCmd(opts),
		newHistoryCmd(opts),
		newListCmd(opts),
		newGraphCmd(opts),
		newVersionCmd(),
	)
	return root
}

// withClient dials the service, runs fn under the call deadline and closes
// the connection.
func withClient(ctx context.Context, opts *options, fn func(context.Context, *rpc.Client) error) error {
	client, err := rpc.Dial(opts.addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	return fn(ctx, client)
}

// printJSON writes m as indented JSON keyed by proto field names.
func printJSON(w io.Writer, m proto.Message) error {
	data, err := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		UseProtoNames:   true,
		EmitUnpopulated: true,
	}.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
