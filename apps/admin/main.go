package main

import (
	"fmt"
	"log"
	"os"

	dig_container "github.com/trezcool/investigacion/apps/api/di/dig"
	"github.com/trezcool/investigacion/core"
)

func main() {
	c := dig_container.New()

	var code int
	err := c.Invoke(func(logger core.Logger, tables dig_container.Tables) {
		cli := commandLine{
			tables: []table{tables.Students, tables.Teachers, tables.Projects},
			in:     os.Stdin,
			out:    os.Stdout,
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				logger.Error(fmt.Sprintf("admin %s: %v", os.Args[1], err), err)
			}
			code = 1
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}
