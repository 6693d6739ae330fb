package main

import "github.com/nfrund/finassist/cmd/finassist/cmd"

func main() {
	cmd.Execute()
}
