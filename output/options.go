package output

type Options struct {
	PrintRequest  bool
	PrintResponse bool

	EnableFormat bool
	EnableColor  bool
}
