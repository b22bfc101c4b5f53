package reqline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/flags"
	"github.com/HexmosTech/reqline/input"
	"github.com/HexmosTech/reqline/output"
	"github.com/HexmosTech/reqline/version"
	"github.com/pkg/errors"
)

type Options struct {
	// Transport is used for outgoing requests when set.
	Transport http.RoundTripper
}

func Main(options *Options) error {
	args, usage, optionSet, err := flags.Parse(os.Args)
	if err != nil {
		if _, ok := errors.Cause(err).(*flags.UsageError); ok {
			usage.PrintUsage(os.Stderr)
		}
		return err
	}

	if optionSet.ShowVersion {
		fmt.Printf("reqline %s\n", version.Current())
		return nil
	}
	if optionSet.ShowLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	line, err := readReqline(args, os.Stdin, optionSet.ReadStdin)
	if _, ok := errors.Cause(err).(*flags.UsageError); ok {
		usage.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()
	return run(ctx, line, optionSet, options, writer)
}

// readReqline joins the positional arguments with single spaces, or falls back to stdin.
func readReqline(args []string, stdin io.Reader, readStdin bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !readStdin {
		return "", flags.NewUsageError("reqline is required")
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	line := strings.TrimSpace(string(b))
	if line == "" {
		return "", flags.NewUsageError("reqline is required")
	}
	return line, nil
}

func run(ctx context.Context, line string, optionSet *flags.OptionSet, options *Options, w io.Writer) error {
	in, err := input.ParseReqline(line)
	if err != nil {
		return err
	}

	printer := output.NewPrinter(w, &optionSet.OutputOptions)
	if optionSet.CheckOnly {
		return printer.PrintInput(in)
	}

	exchangeOptions := optionSet.ExchangeOptions
	if options != nil && options.Transport != nil {
		exchangeOptions.Transport = options.Transport
	}
	sender, err := exchange.NewSender(&exchangeOptions)
	if err != nil {
		return err
	}
	result, err := sender.Send(ctx, in)
	if err != nil {
		return err
	}
	return printer.PrintResult(result)
}
