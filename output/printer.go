package output

import (
	"io"

	"github.com/HexmosTech/reqline/exchange"
	"github.com/HexmosTech/reqline/input"
	"github.com/pkg/errors"
)

type Printer interface {
	PrintInput(in *input.Input) error
	PrintResult(result *exchange.Result) error
}

func NewPrinter(writer io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      writer,
			EnableColor: options.EnableColor,
			Options:     options,
		})
	}
	return NewPlainPrinter(writer, options)
}

// sections selects the parts of result to print, keeping the envelope's key order.
func sections(result *exchange.Result, options *Options) (input.Object, error) {
	b, err := input.EncodeJSON(result)
	if err != nil {
		return input.Object{}, err
	}
	v, err := input.DecodeJSON(b)
	if err != nil {
		return input.Object{}, errors.Wrap(err, "re-reading result")
	}
	envelope, _ := v.(input.Object)

	selected := input.Object{}
	for _, key := range envelope.Keys() {
		if key == "request" && !options.PrintRequest {
			continue
		}
		if key == "response" && !options.PrintResponse {
			continue
		}
		value, _ := envelope.Get(key)
		selected.Set(key, value)
	}
	return selected, nil
}
