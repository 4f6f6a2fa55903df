package main

import "github.com/OpenTraceLab/OpenTraceField/cmd/otf/cmd"

func main() {
	cmd.Execute()
}
