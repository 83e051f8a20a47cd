package shell

import (
	"context"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"

	"github.com/misteriaud/passeri"
)

// Run parses args, connects to the backend and serves the console on stdin.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// file and environment first, then flags on top
	loaded, err := passeri.LoadClientOptions(ctx, options.Config)
	if err != nil {
		return err
	}
	options.ClientOptions = *loaded
	if _, err = flags.ParseArgs(options, args); err != nil {
		return err
	}
	service, err := New(ctx, options, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return service.Serve(ctx, os.Stdin)
}
