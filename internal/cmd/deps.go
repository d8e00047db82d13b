package cmd

import "os"

var (
	envGet    = os.Getenv
	getwd     = os.Getwd
	writeFile = os.WriteFile
)
