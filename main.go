package main

import "github.com/redactyl/piiguard/cmd/piiguard"

func main() { piiguard.Execute() }
