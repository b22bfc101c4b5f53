package main

import (
	"fmt"
	"os"

	"github.com/HexmosTech/reqline"
	_ "github.com/mtibben/androiddnsfix"
)

func main() {
	if err := reqline.Main(&reqline.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
