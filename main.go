package main

import "github.com/wydh/aronnax/cmd"

func main() {
	cmd.Execute()
}
