package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/input"
	"github.com/logrusorgru/aurora"
)

const indentUnit = "    "

type PrettyPrinter struct {
	writer        io.Writer
	options       *Options
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	jsonPalette   *JSONPalette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
	Options     *Options
}

type HeaderPalette struct {
	Proto       aurora.Color
	Method      aurora.Color
	URL         aurora.Color
	Success     aurora.Color
	Redirect    aurora.Color
	ClientError aurora.Color
	Failure     aurora.Color
	FieldValue  aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:       aurora.BlueFg,
	Method:      aurora.GreenFg | aurora.BoldFm,
	URL:         aurora.CyanFg,
	Success:     aurora.GreenFg | aurora.BoldFm,
	Redirect:    aurora.CyanFg | aurora.BoldFm,
	ClientError: aurora.BrownFg | aurora.BoldFm,
	Failure:     aurora.RedFg | aurora.BoldFm,
	FieldValue:  aurora.CyanFg,
}

type JSONPalette struct {
	Name    aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Name:    aurora.BlueFg,
	String:  aurora.BrownFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.MagentaFg,
	Null:    aurora.RedFg,
	Symbol:  aurora.BrightFg | aurora.BlackFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	options := config.Options
	if options == nil {
		options = &Options{PrintRequest: true, PrintResponse: true}
	}
	return &PrettyPrinter{
		writer:        config.Writer,
		options:       options,
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		jsonPalette:   &defaultJSONPalette,
	}
}

func (p *PrettyPrinter) PrintInput(in *input.Input) error {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(string(in.Method), p.headerPalette.Method),
		p.aurora.Colorize(in.URL, p.headerPalette.URL))

	b, err := input.EncodeJSON(in)
	if err != nil {
		return err
	}
	v, err := input.DecodeJSON(b)
	if err != nil {
		return err
	}
	p.writeValue(v, 0)
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PrettyPrinter) PrintResult(result *exchange.Result) error {
	p.printStatusLine(&result.Response)

	selected, err := sections(result, p.options)
	if err != nil {
		return err
	}
	if selected.Len() == 0 {
		return nil
	}
	p.writeValue(selected, 0)
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PrettyPrinter) printStatusLine(resp *exchange.ResponseSummary) {
	duration := time.Duration(resp.Duration) * time.Millisecond
	if resp.HTTPStatus == 0 {
		reason := "no response"
		if resp.Failure != nil {
			reason = resp.Failure.Error()
		}
		fmt.Fprintf(p.writer, "%s %s %s\n",
			p.aurora.Colorize("HTTP", p.headerPalette.Proto),
			p.aurora.Colorize(fmt.Sprintf("0 (%s)", reason), p.headerPalette.Failure),
			p.aurora.Colorize(duration.String(), p.headerPalette.FieldValue))
		return
	}

	fmt.Fprintf(p.writer, "%s %s %s %s\n",
		p.aurora.Colorize("HTTP", p.headerPalette.Proto),
		p.aurora.Colorize(strconv.Itoa(resp.HTTPStatus), p.statusColor(resp.HTTPStatus)),
		p.aurora.Colorize(duration.String(), p.headerPalette.FieldValue),
		p.aurora.Colorize(bytefmt.ByteSize(uint64(resp.Size)), p.headerPalette.FieldValue))
}

func (p *PrettyPrinter) statusColor(status int) aurora.Color {
	switch {
	case status < 300:
		return p.headerPalette.Success
	case status < 400:
		return p.headerPalette.Redirect
	case status < 500:
		return p.headerPalette.ClientError
	default:
		return p.headerPalette.Failure
	}
}

// writeValue writes a value decoded by input.DecodeJSON as indented, colored JSON.
func (p *PrettyPrinter) writeValue(v interface{}, depth int) {
	switch v := v.(type) {
	case input.Object:
		if v.Len() == 0 {
			p.symbol("{}")
			return
		}
		p.symbol("{")
		fmt.Fprintln(p.writer)
		for i, key := range v.Keys() {
			p.indent(depth + 1)
			fmt.Fprint(p.writer, p.aurora.Colorize(quote(key), p.jsonPalette.Name))
			p.symbol(":")
			fmt.Fprint(p.writer, " ")
			value, _ := v.Get(key)
			p.writeValue(value, depth+1)
			if i < v.Len()-1 {
				p.symbol(",")
			}
			fmt.Fprintln(p.writer)
		}
		p.indent(depth)
		p.symbol("}")
	case []interface{}:
		if len(v) == 0 {
			p.symbol("[]")
			return
		}
		p.symbol("[")
		fmt.Fprintln(p.writer)
		for i, elem := range v {
			p.indent(depth + 1)
			p.writeValue(elem, depth+1)
			if i < len(v)-1 {
				p.symbol(",")
			}
			fmt.Fprintln(p.writer)
		}
		p.indent(depth)
		p.symbol("]")
	case string:
		fmt.Fprint(p.writer, p.aurora.Colorize(quote(v), p.jsonPalette.String))
	case json.Number:
		fmt.Fprint(p.writer, p.aurora.Colorize(v.String(), p.jsonPalette.Number))
	case bool:
		fmt.Fprint(p.writer, p.aurora.Colorize(strconv.FormatBool(v), p.jsonPalette.Boolean))
	case nil:
		fmt.Fprint(p.writer, p.aurora.Colorize("null", p.jsonPalette.Null))
	default:
		fmt.Fprint(p.writer, input.FormatValue(v))
	}
}

func (p *PrettyPrinter) symbol(s string) {
	fmt.Fprint(p.writer, p.aurora.Colorize(s, p.jsonPalette.Symbol))
}

func (p *PrettyPrinter) indent(depth int) {
	fmt.Fprint(p.writer, strings.Repeat(indentUnit, depth))
}

func quote(s string) string {
	b, err := input.EncodeJSON(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(b)
}
