package main

import "github.com/fadcv/fadcv/cmd"

func main() {
	cmd.Execute()
}
