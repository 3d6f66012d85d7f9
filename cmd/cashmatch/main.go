// Command cashmatch finds the cheapest bond portfolio that funds a schedule
// of cash requirements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to cashmatch.toml. Defaults to $CASHMATCH_CONFIG, then the binary dir.")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&optimizeCmd{out: os.Stdout}, "")
	commander.Register(&sampleCmd{}, "")
	commander.Register(&versionCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
