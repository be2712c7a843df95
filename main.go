package main

import "github.com/Digital-Shane/adr/internal/cmd"

func main() {
	cmd.Execute()
}
