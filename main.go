package main

import "model-fetcher/cmd"

func main() {
	cmd.Execute()
}
