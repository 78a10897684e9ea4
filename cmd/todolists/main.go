// Command todolists manages todo lists from the command line.
package main

import "github.com/mesh-intelligence/todolists/internal/cli"

func main() {
	cli.Execute()
}
