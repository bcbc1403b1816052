package main

import "github.com/TheusHen/e2ee/internal/cli"

func main() {
	cli.Execute()
}
