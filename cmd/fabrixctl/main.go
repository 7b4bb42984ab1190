// Command fabrixctl is thin CLI glue over the fabrix library: it dumps
// tables to Dataset-JSON files and loads Dataset-JSON files back into a
// database, exercising sqlexec's connection lifecycle, select pipeline,
// and save strategies end to end.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jacobbishopxy/fabrix/util"
)

func main() {
	util.InitSlog()

	opts, connString := parseOptions(os.Args[1:])

	cfg, err := parseRunConfig(opts.Config)
	if err != nil {
		log.Fatal(err)
	}

	if len(opts.Dump) == 0 && len(opts.Load) == 0 {
		fmt.Fprintln(os.Stderr, "nothing to do: specify --dump and/or --load")
		os.Exit(1)
	}

	if err := run(context.Background(), opts, connString, cfg); err != nil {
		log.Fatal(err)
	}
}
