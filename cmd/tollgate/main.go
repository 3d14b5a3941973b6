// tollgate gates an autonomous agent's dangerous tool calls behind a
// remote human approval service.
package main

import "github.com/ppiankov/tollgate/internal/cli"

func main() {
	cli.Execute()
}
