package main

import "github.com/notargets/eulerflux/cmd"

func main() {
	cmd.Execute()
}
