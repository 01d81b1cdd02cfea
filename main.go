package main

import "github.com/greenmetrics/mvstat/cmd"

func main() {
	cmd.Execute()
}
