package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bgunnarsson/qbuf/internal/app"
	"github.com/bgunnarsson/qbuf/internal/db/duckdb"
	"github.com/bgunnarsson/qbuf/internal/logx"
)

func main() {
	var (
		query       string
		showVersion bool
	)

	flag.StringVar(&query, "q", "", "SQL query to run in non-interactive mode")
	flag.BoolVar(&showVersion, "version", false, "print tool and engine version")
	flag.Parse()

	logx.Init()

	if showVersion {
		fmt.Println("qbuf (buffers as SQL relations)")
		if v, err := duckdb.Version(); err == nil {
			fmt.Println("engine:", v)
		} else {
			fmt.Println("engine: unavailable:", err)
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: qbuf [-q query] <file.csv|file.json|file.jsonl> ...")
		os.Exit(1)
	}

	paths := flag.Args()

	ctx := context.Background()

	stdoutIsTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if query != "" || !stdoutIsTTY {
		if err := app.RunNonInteractive(ctx, paths, query); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := app.RunInteractive(ctx, paths); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
