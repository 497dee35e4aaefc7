package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ritamzico/implica"
)

const helpText = `implica interactive REPL

Commands:
  new <name>    Create a new empty graph
  list          List all loaded graphs
  use <name>    Set the active graph for queries
  help          Show this help message
  exit / quit   Exit the REPL

Any other input is treated as a query against the active graph. One
statement per line:

  CREATE (a:A)
  CREATE (x:A) -[:(A -> B)]-> (y:B)
  MATCH (x:A) RETURN x
  MATCH (x:A) REMOVE x
  MATCH (n:A) SET n {k: 1}
  MATCH (n:A) SET n {k: 1} overwrite
`

func runREPL() {
	graphs := make(map[string]*implica.Graph)
	var active string

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("implica — an in-memory typed graph database")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		if active != "" {
			fmt.Printf("[%s]> ", active)
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "list":
			if len(graphs) == 0 {
				fmt.Println("(no graphs loaded)")
			} else {
				for name := range graphs {
					marker := " "
					if name == active {
						marker = "*"
					}
					fmt.Printf("  %s %s\n", marker, name)
				}
			}

		case "new":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: new <name>")
				continue
			}
			name := parts[1]
			graphs[name] = implica.New()
			if active == "" {
				active = name
			}
			fmt.Printf("created empty graph %q\n", name)

		case "use":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: use <name>")
				continue
			}
			name := parts[1]
			if _, ok := graphs[name]; !ok {
				fmt.Fprintf(os.Stderr, "no graph named %q\n", name)
				continue
			}
			active = name
			fmt.Printf("active graph set to %q\n", name)

		default:
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active graph — use 'new' first")
				continue
			}
			runStatement(graphs[active], line)
		}
	}
}

// runStatement dispatches one query-language line against g. This REPL
// accepts one operation per line — CREATE, or MATCH optionally followed by
// RETURN/REMOVE/SET — rather than the full multi-op Query pipeline, which
// callers compose directly via the implica package.
func runStatement(g *implica.Graph, line string) {
	ctx := context.Background()
	upper := strings.ToUpper(line)

	switch {
	case strings.HasPrefix(upper, "CREATE "):
		pattern := strings.TrimSpace(line[len("CREATE "):])
		q := g.Query()
		if _, err := q.Create(pattern); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if err := q.Execute(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Println("ok")

	case strings.HasPrefix(upper, "MATCH "):
		runMatchStatement(g, ctx, line[len("MATCH "):])

	default:
		fmt.Fprintf(os.Stderr, "unrecognized statement (expected CREATE or MATCH): %s\n", line)
	}
}

func runMatchStatement(g *implica.Graph, ctx context.Context, rest string) {
	pattern, tail := splitAtKeyword(rest)
	q := g.Query()
	if _, err := q.Match(pattern); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	upperTail := strings.ToUpper(strings.TrimSpace(tail))
	switch {
	case strings.HasPrefix(upperTail, "RETURN"):
		vars := strings.Fields(strings.TrimSpace(tail[len("RETURN"):]))
		rows, err := q.Return(ctx, vars...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		for _, row := range rows {
			parts := make([]string, 0, len(vars))
			for _, v := range vars {
				parts = append(parts, fmt.Sprintf("%s=%s", v, row[v].String()))
			}
			fmt.Println(strings.Join(parts, ", "))
		}

	case strings.HasPrefix(upperTail, "REMOVE"):
		vars := strings.Fields(strings.TrimSpace(tail[len("REMOVE"):]))
		q.Remove(vars...)
		if err := q.Execute(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Println("ok")

	case strings.HasPrefix(upperTail, "SET"):
		runSetStatement(q, ctx, strings.TrimSpace(tail[len("SET"):]))

	default:
		fmt.Fprintf(os.Stderr, "MATCH must be followed by RETURN, REMOVE, or SET\n")
	}
}

func runSetStatement(q *implica.Query, ctx context.Context, rest string) {
	fields := strings.SplitN(rest, "{", 2)
	if len(fields) != 2 {
		fmt.Fprintln(os.Stderr, "usage: SET <var> {k: v, ...} [overwrite]")
		return
	}
	variable := strings.TrimSpace(fields[0])
	propsAndTail := "{" + fields[1]
	closeIdx := strings.LastIndex(propsAndTail, "}")
	if closeIdx < 0 {
		fmt.Fprintln(os.Stderr, "unterminated property literal")
		return
	}
	propLiteral := propsAndTail[:closeIdx+1]
	overwrite := strings.Contains(strings.ToLower(propsAndTail[closeIdx+1:]), "overwrite")

	if _, err := q.Set(variable, propLiteral, overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if err := q.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println("ok")
}

// splitAtKeyword finds the trailing RETURN/REMOVE/SET clause of a MATCH
// statement and returns (path pattern text, clause text including the
// keyword).
func splitAtKeyword(s string) (pattern, tail string) {
	upper := strings.ToUpper(s)
	for _, kw := range []string{"RETURN", "REMOVE", "SET"} {
		if idx := strings.Index(upper, " "+kw); idx >= 0 {
			return strings.TrimSpace(s[:idx]), s[idx+1:]
		}
	}
	return strings.TrimSpace(s), ""
}
