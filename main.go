package main

import "quickcut/cmd"

func main() {
	cmd.Execute()
}
