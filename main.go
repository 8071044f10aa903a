package main

import "github.com/Alijeyrad/reqtrace/cmd"

func main() {
	cmd.Execute()
}
