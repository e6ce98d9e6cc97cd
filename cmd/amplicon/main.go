package main

import (
	"amplicon/internal/appshell"
	"amplicon/internal/cli"
)

func main() { appshell.Main(cli.Execute) }
