package main

import (
	cmd "github.com/edgi-govdata-archiving/seedgen/internal/cli"
)

func main() {
	cmd.Execute()
}
