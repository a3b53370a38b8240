package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var (
		scenario    = flag.String("demo", "", "Scenario to run (firewall, query)")
		list        = flag.Bool("list", false, "List creatable classes and exit")
		trace       = flag.Bool("trace", false, "Print the boundary call trace after the scenario")
		interactive = flag.Bool("i", false, "Interactive session monitor")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rt := newDemoRuntime()

	if *list {
		fmt.Println("Creatable classes:")
		for _, c := range demoClasses {
			fmt.Printf("  %s  %s\n", c.id, c.name)
		}
		return
	}

	if *scenario == "" {
		fmt.Fprintln(os.Stderr, "Usage: comctl -demo <firewall|query> [-trace]")
		fmt.Fprintln(os.Stderr, "       comctl -list")
		fmt.Fprintln(os.Stderr, "       comctl -i  (interactive session monitor)")
		os.Exit(1)
	}

	var err error
	switch *scenario {
	case "firewall":
		err = runFirewallScenario(os.Stdout, rt)
	case "query":
		err = runQueryScenario(os.Stdout, rt)
	default:
		err = fmt.Errorf("unknown scenario %q", *scenario)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *trace {
		fmt.Println("\nBoundary trace:")
		for _, call := range rt.Trace() {
			fmt.Printf("  %s\n", call)
		}
	}
	if v := rt.Violations(); len(v) > 0 {
		fmt.Fprintln(os.Stderr, "\nBoundary violations:")
		for _, s := range v {
			fmt.Fprintf(os.Stderr, "  %s\n", s)
		}
		os.Exit(1)
	}
}
