package main

import "github.com/philipparndt/go3mfexport/internal/cmd"

func main() {
	cmd.Parse()
}
