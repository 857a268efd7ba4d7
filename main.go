package main

import (
	"github.com/anchore/npmsweep/cmd"
)

func main() {
	cmd.Execute()
}
