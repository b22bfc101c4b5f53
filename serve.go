package reqline

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/flags"
	"github.com/HexmosTech/reqline/server"
	"github.com/HexmosTech/reqline/version"
	"github.com/pkg/errors"
)

// Serve runs the reqline endpoint until SIGINT or SIGTERM.
func Serve(options *Options) error {
	usage, optionSet, err := flags.ParseServer(os.Args, os.Getenv)
	if err != nil {
		if _, ok := errors.Cause(err).(*flags.UsageError); ok {
			usage.PrintUsage(os.Stderr)
		}
		return err
	}
	if optionSet.ShowVersion {
		fmt.Printf("reqlined %s\n", version.Current())
		return nil
	}

	exchangeOptions := optionSet.ExchangeOptions
	if options != nil && options.Transport != nil {
		exchangeOptions.Transport = options.Transport
	}
	sender, err := exchange.NewSender(&exchangeOptions)
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "reqlined ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(sender, logger).ListenAndServe(ctx, optionSet.Listen)
}
