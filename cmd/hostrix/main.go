package main

import "os"

var version = "dev"

func main() {
	root := newRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
