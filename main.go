package main

import "github.com/albrecht-spranger/sisiwaka-touen-importer/cmd"

func main() {
	cmd.Execute()
}
