package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/investigacion/core"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

// table is the maintenance surface of a sheet table.
type table interface {
	Sheet() string
	EnsureHeader(ctx context.Context) (bool, error)
	Duplicates(ctx context.Context) (map[string][]int, error)
	Compact(ctx context.Context) (int, error)
}

type commandLine struct {
	tables []table // in sheet order: students, teachers, projects
	in     io.Reader
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  init - write the missing header cells of every sheet")
	fmt.Fprintln(cli.out, "  check - report identity values held by more than one row")
	fmt.Fprintln(cli.out, "  compact -table ESTUDIANTES|DOCENTES|PROYECTOS [-yes] - remove the blank rows left by deletions; stop the API first")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	compactCmd := flag.NewFlagSet("compact", flag.ContinueOnError)
	compactCmd.SetOutput(cli.out)
	compactTable := compactCmd.String("table", "", "The sheet to compact.")
	compactYes := compactCmd.Bool("yes", false, "Do not ask for confirmation.")

	ctx := context.Background()
	switch args[1] {
	case "init":
		return cli.init(ctx)
	case "check":
		return cli.check(ctx)
	case "compact":
		if err := compactCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		tbl := cli.table(*compactTable)
		if tbl == nil {
			compactCmd.Usage()
			return errHelp
		}
		if !*compactYes && isTerminalFunc(int(os.Stdin.Fd())) {
			ok, err := cli.confirm(fmt.Sprintf("Compact %s? Row positions will change; the API must be stopped. [y/N]: ", tbl.Sheet()))
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}
		return cli.compact(ctx, tbl)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) table(name string) table {
	if name == "" {
		return nil
	}
	for _, t := range cli.tables {
		if strings.EqualFold(t.Sheet(), name) {
			return t
		}
	}
	return nil
}

func (cli *commandLine) confirm(prompt string) (bool, error) {
	fmt.Fprint(cli.out, prompt)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch core.CleanString(answer, true) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}

func (cli *commandLine) init(ctx context.Context) error {
	for _, t := range cli.tables {
		written, err := t.EnsureHeader(ctx)
		if err != nil {
			return pkgerrors.Wrapf(err, "ensuring %s header", t.Sheet())
		}
		if written {
			fmt.Fprintf(cli.out, "%s: header written\n", t.Sheet())
		} else {
			fmt.Fprintf(cli.out, "%s: header up to date\n", t.Sheet())
		}
	}
	return nil
}

func (cli *commandLine) check(ctx context.Context) error {
	var found int
	for _, t := range cli.tables {
		dups, err := t.Duplicates(ctx)
		if err != nil {
			return pkgerrors.Wrapf(err, "checking %s", t.Sheet())
		}
		keys := make([]string, 0, len(dups))
		for key := range dups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			rows := make([]string, 0, len(dups[key]))
			for _, r := range dups[key] {
				rows = append(rows, fmt.Sprint(r))
			}
			fmt.Fprintf(cli.out, "%s: %q is held by rows %s\n", t.Sheet(), key, strings.Join(rows, ", "))
		}
		found += len(keys)
	}
	if found > 0 {
		return pkgerrors.Wrapf(core.ErrNonUniqueIdentity, "%d duplicated identity values", found)
	}
	fmt.Fprintln(cli.out, "no duplicated identity values")
	return nil
}

func (cli *commandLine) compact(ctx context.Context, t table) error {
	removed, err := t.Compact(ctx)
	if err != nil {
		return pkgerrors.Wrapf(err, "compacting %s", t.Sheet())
	}
	fmt.Fprintf(cli.out, "%s: %d blank rows removed\n", t.Sheet(), removed)
	return nil
}
