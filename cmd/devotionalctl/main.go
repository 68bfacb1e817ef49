// Command devotionalctl queries the devotional API from the terminal.
package main

import "github.com/jsamuelsen/devotional-service/internal/cli"

func main() {
	cli.Execute()
}
