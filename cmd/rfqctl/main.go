package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "rfqctl",
		Usage: "Utility for working with the RFQ matching catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Value: "rfq.db",
				Usage: "path to the sqlite database",
			},
		},
		Commands: []*cli.Command{
			seedCmd,
			importCmd,
			matchCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}
