package main

import "github.com/schemanorm/schemanorm/cmd"

func main() {
	cmd.Execute()
}
