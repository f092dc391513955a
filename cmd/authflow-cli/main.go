package main

import "github.com/nfrund/authflow/cmd/authflow-cli/cmd"

func main() {
	cmd.Execute()
}
