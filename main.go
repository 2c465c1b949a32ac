package main

import "github.com/eknkc/pinsearch/cmd"

func main() {
	cmd.Execute()
}
