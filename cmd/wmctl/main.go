// Command wmctl is a client for a running wm daemon's IPC socket.
package main

import "github.com/bnema/wm/cmd/wmctl/cmd"

func main() {
	cmd.Execute()
}
