package main

import "github.com/j-casimiro/zenith-ai/internal/cmd"

func main() {
	cmd.Execute()
}
