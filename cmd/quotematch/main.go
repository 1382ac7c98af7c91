package main

import "quotematch/internal/cli"

func main() {
	cli.Execute()
}
