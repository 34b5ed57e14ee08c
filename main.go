package main

import "github.com/libreria-aurora/aurora-cli/cmd"

func main() {
	cmd.Execute()
}
