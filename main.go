package main

import "github.com/autoform/autoform/cmd"

func main() {
	cmd.Execute()
}
