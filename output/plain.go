package output

import (
	"fmt"
	"io"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/input"
)

// PlainPrinter writes one compact JSON document per call, for piping into other tools.
type PlainPrinter struct {
	writer  io.Writer
	options *Options
}

func NewPlainPrinter(writer io.Writer, options *Options) Printer {
	return &PlainPrinter{
		writer:  writer,
		options: options,
	}
}

func (p *PlainPrinter) PrintInput(in *input.Input) error {
	return p.printJSON(in)
}

func (p *PlainPrinter) PrintResult(result *exchange.Result) error {
	selected, err := sections(result, p.options)
	if err != nil {
		return err
	}
	return p.printJSON(selected)
}

func (p *PlainPrinter) printJSON(v interface{}) error {
	b, err := input.EncodeJSON(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.writer, "%s\n", b)
	return nil
}
