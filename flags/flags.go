package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var (
	reNumber = regexp.MustCompile(`^[0-9.]+$`)
	reDigits = regexp.MustCompile(`^[0-9]+$`)
)

const (
	defaultTimeout         = "30s"
	defaultListen          = ":8080"
	defaultMaxResponseSize = "10M"
)

type Usage interface {
	PrintUsage(w io.Writer)
}

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func NewUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

type OptionSet struct {
	ReadStdin    bool
	CheckOnly    bool
	ShowVersion  bool
	ShowLicenses bool

	ExchangeOptions exchange.Options
	OutputOptions   output.Options
}

type ServerOptionSet struct {
	Listen      string
	ShowVersion bool

	ExchangeOptions exchange.Options
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// Parse parses the command line of the reqline binary. args[0] is the program name.
func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) ([]string, Usage, *OptionSet, error) {
	var ignoreStdin bool
	var plain bool
	var checkOnly bool
	var showVersion bool
	var showLicenses bool
	var followRedirects bool
	var forceHTTP1 bool
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	authFlag := ""
	verifyFlag := "yes"
	timeout := defaultTimeout
	maxResponseSize := "0"

	flagSet := getopt.New()
	flagSet.SetParameters("HTTP METHOD | URL TARGET [| HEADERS {...}] [| QUERY {...}] [| BODY {...}]")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies which parts of the result to print (q: request, s: response)")
	flagSet.BoolVarLong(&plain, "plain", 0, "print one compact JSON line without the status line")
	flagSet.BoolVarLong(&checkOnly, "check", 'c', "parse the reqline and print it without sending anything")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&followRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "set to \"no\" to skip checking the host's SSL certificate")
	flagSet.BoolVarLong(&forceHTTP1, "http1", 0, "force HTTP/1.1 protocol")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "colon-separated username and password for basic authentication")
	flagSet.StringVarLong(&maxResponseSize, "max-response-size", 0, "largest response payload to read, such as 512K or 10M (0: unlimited)")
	flagSet.BoolVarLong(&showVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&showLicenses, "licenses", 0, "print licenses and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, NewUsageError(err.Error())
	}

	outputOptions := output.Options{
		EnableFormat: !plain,
		EnableColor:  terminalInfo.stdoutIsTerminal,
	}
	if err := parsePrintFlag(printFlag, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	exchangeOptions, err := parseExchangeOptions(timeout, maxResponseSize, verifyFlag)
	if err != nil {
		return nil, flagSet, nil, err
	}
	exchangeOptions.FollowRedirects = followRedirects
	exchangeOptions.ForceHTTP1 = forceHTTP1
	if err := parseAuth(authFlag, &exchangeOptions.Auth); err != nil {
		return nil, flagSet, nil, err
	}

	optionSet := &OptionSet{
		ReadStdin:       !ignoreStdin && !terminalInfo.stdinIsTerminal,
		CheckOnly:       checkOnly,
		ShowVersion:     showVersion,
		ShowLicenses:    showLicenses,
		ExchangeOptions: exchangeOptions,
		OutputOptions:   outputOptions,
	}
	return flagSet.Args(), flagSet, optionSet, nil
}

// ParseServer parses the command line of the reqlined binary. Defaults come from
// the environment, read through getenv, and flags override them.
func ParseServer(args []string, getenv func(string) string) (Usage, *ServerOptionSet, error) {
	var showVersion bool
	var followRedirects bool
	verifyFlag := "yes"
	listen := envOr(getenv, "REQLINE_LISTEN", defaultListen)
	timeout := envOr(getenv, "REQLINE_TIMEOUT", defaultTimeout)
	maxResponseSize := envOr(getenv, "REQLINE_MAX_RESPONSE_SIZE", defaultMaxResponseSize)

	flagSet := getopt.New()
	flagSet.BoolVarLong(&showVersion, "version", 0, "print version and exit")
	flagSet.StringVarLong(&listen, "listen", 'l', "address to listen on ($REQLINE_LISTEN)")
	flagSet.StringVarLong(&timeout, "timeout", 0, "timeout of each outgoing request ($REQLINE_TIMEOUT)")
	flagSet.StringVarLong(&maxResponseSize, "max-response-size", 0, "largest upstream payload to read ($REQLINE_MAX_RESPONSE_SIZE)")
	flagSet.BoolVarLong(&followRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "set to \"no\" to skip checking upstream SSL certificates")
	if err := flagSet.Getopt(args, nil); err != nil {
		return flagSet, nil, NewUsageError(err.Error())
	}
	if len(flagSet.Args()) > 0 {
		return flagSet, nil, NewUsageError("unexpected argument: " + flagSet.Args()[0])
	}

	exchangeOptions, err := parseExchangeOptions(timeout, maxResponseSize, verifyFlag)
	if err != nil {
		return flagSet, nil, err
	}
	exchangeOptions.FollowRedirects = followRedirects

	return flagSet, &ServerOptionSet{
		Listen:          listen,
		ShowVersion:     showVersion,
		ExchangeOptions: exchangeOptions,
	}, nil
}

func envOr(getenv func(string) string, key string, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseExchangeOptions(timeout, maxResponseSize, verifyFlag string) (exchange.Options, error) {
	options := exchange.Options{}

	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return options, err
	}
	options.Timeout = d

	size, err := parseSize(maxResponseSize)
	if err != nil {
		return options, err
	}
	options.MaxResponseSize = size

	switch verifyFlag {
	case "no":
		options.SkipVerify = true
	case "yes":
	default:
		return options, errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}
	return options, nil
}

func parsePrintFlag(printFlag string, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		outputOptions.PrintRequest = true
		outputOptions.PrintResponse = true
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'q':
			outputOptions.PrintRequest = true
		case 's':
			outputOptions.PrintResponse = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of qs): %c", c)
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

// parseSize reads a human size such as 512K or 10M. Plain digits are bytes and 0 means unlimited.
func parseSize(size string) (int64, error) {
	size = strings.TrimSpace(size)
	if size == "" || size == "0" {
		return 0, nil
	}
	if reDigits.MatchString(size) {
		size += "B"
	}
	n, err := bytefmt.ToBytes(size)
	if err != nil {
		return 0, errors.Errorf("Value of --max-response-size must be a size such as 512K or 10M: %v", size)
	}
	return int64(n), nil
}

func parseAuth(authFlag string, options *exchange.AuthOptions) error {
	if authFlag == "" {
		return nil
	}

	var userName, password string
	index := strings.Index(authFlag, ":")
	if index == -1 {
		userName = authFlag
		p, err := askPassword(userName)
		if err != nil {
			return err
		}
		password = p
	} else {
		userName = authFlag[:index]
		password = authFlag[index+1:]
	}

	options.Enabled = true
	options.UserName = userName
	options.Password = password
	return nil
}
