package main

import "sheet-graph/cmd"

func main() {
	cmd.Execute()
}
