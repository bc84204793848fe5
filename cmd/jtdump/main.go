package main

import (
	"github.com/c53mike/wuffs/cmd/jtdump/cmd"
)

func main() {
	cmd.Execute()
}
