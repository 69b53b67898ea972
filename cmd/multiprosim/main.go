// Command multiprosim simulates a small distributed operating system: a
// fixed set of processes, partitioned across compute nodes, each running
// its own round-robin scheduler and coordinating through synchronous
// cross-node SEND/RECV rendezvous.
package main

import (
	"os"

	"github.com/MaafiaTroodon/MultiProSim/cmd/multiprosim/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
