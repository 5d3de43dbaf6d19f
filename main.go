package main

import "github.com/proftool/proftool/cmd/proftool"

func main() { proftool.Execute() }
