package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/native-adapter/adapter"
	"github.com/wippyai/native-adapter/config"
	"github.com/wippyai/native-adapter/platform"

	// registers the desktop backend when built with -tags glfw
	_ "github.com/wippyai/native-adapter/platform/glfw"
)

// argList collects repeated -arg flags.
type argList []string

func (a *argList) String() string { return strings.Join(*a, ",") }

func (a *argList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	var (
		cfgPath     = flag.String("config", "", "Path to TOML config (default: $"+config.EnvPath+")")
		backend     = flag.String("backend", "", "Platform backend, overrides the config")
		opName      = flag.String("op", "", "Operation to call")
		list        = flag.Bool("list", false, "List operations and backends and exit")
		stats       = flag.Bool("stats", false, "Print adapter counters after the call")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		opArgs      argList
	)
	flag.Var(&opArgs, "arg", "Operation argument (repeatable)")
	flag.Parse()

	if *list {
		printCatalog(os.Stdout)
		return
	}

	if *opName == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: adapterctl -op <name> [-arg value ...] [-config file.toml] [-stats]")
		fmt.Fprintln(os.Stderr, "       adapterctl -list")
		fmt.Fprintln(os.Stderr, "       adapterctl -i  (interactive mode)")
		os.Exit(1)
	}

	cfg, err := loadConfig(*cfgPath, *backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, cfg, *opName, opArgs, *stats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, backend string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return cfg, err
	}
	if backend != "" {
		cfg.Platform.Backend = backend
	}
	return cfg, nil
}

func printCatalog(w io.Writer) {
	fmt.Fprintf(w, "Backends: %s\n\nOperations:\n", strings.Join(platform.Backends(), ", "))
	for _, op := range operations {
		fmt.Fprintf(w, "  %s\n", op.signature())
	}
}

func run(w io.Writer, cfg config.Config, opName string, raw []string, showStats bool) error {
	ad, err := adapter.Open(cfg)
	if err != nil {
		return fmt.Errorf("open adapter: %w", err)
	}
	defer ad.Close()

	fmt.Fprintf(w, "Platform: %s\n", ad.Platform().Name())

	out, err := invoke(ad, opName, raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Result: %s\n", out.result)
	if len(out.exceptions) > 0 {
		fmt.Fprintf(w, "\n--- exceptions ---\n")
		for _, r := range out.exceptions {
			fmt.Fprintln(w, formatException(r))
		}
	}

	if showStats {
		st := ad.Stats()
		fmt.Fprintf(w, "\n--- stats ---\n")
		fmt.Fprintf(w, "calls=%d failures=%d aborts=%d windows=%d pending=%d dropped=%d live=%d\n",
			st.Calls, st.Failures, st.Aborts, st.Windows, st.PendingExceptions, st.DroppedExceptions, st.LiveAllocations)
	}
	return nil
}
