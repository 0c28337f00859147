// arrhashsh is an interactive shell for inspecting and poking at an
// arrhash table backed by a memory-mapped file.
//
// Usage:
//
//	arrhashsh [opts] <file>
//
// Options:
//
//	-n, --new           Create a new table (truncating the file) with --slots slots
//	-s, --slots         Slot count to use with --new (default: from config, else 1024)
//	-c, --config        Path to a HuJSON config file (default: ~/.config/arrhashsh/config.json)
//	-f, --format        Stats output format: json or yaml (default: from config, else json)
//	-v, --verbose       Log region/table open and close events to stderr
//
// Commands (in REPL):
//
//	put <key> <value>   Insert or overwrite a key
//	get <key>           Fetch a value
//	del <key>           Remove a key
//	scan [limit]        List up to limit entries (default: all)
//	size                Show num/usedSlots/maxSlots
//	stats               Show a consistency scan as JSON or YAML
//	dump                Pretty-print every slot (spew)
//	export <path>       Write a snapshot to path
//	import <path>       Load a snapshot from path
//	clear               Remove every key
//	help                Show this help
//	exit / quit / q     Exit
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"github.com/sugawarayuuta/sonnet"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/arrhash/arrhash"
	"github.com/arrhash/arrhash/diag"
	"github.com/arrhash/arrhash/region"
	"github.com/arrhash/arrhash/snapshot"
)

// shellConfig holds options that may come from a HuJSON config file, with
// command-line flags taking precedence.
type shellConfig struct {
	Prompt       string `json:"prompt"`
	DefaultSlots int    `json:"defaultSlots"`
	Format       string `json:"format"`
}

// Options configures ambient shell behavior that isn't part of the
// HuJSON-loaded shellConfig — currently just the logging hook, following
// kiwi.Options / linearhash.Options's defaultOptions convention.
type Options struct {
	// Log receives one line per table/region open or close; defaults to a
	// no-op. The -v/--verbose flag wires it to stderr.
	Log func(msg string, args ...interface{})
}

var defaultOptions = Options{
	Log: func(msg string, args ...interface{}) {},
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "arrhashsh", "config.json")
}

func loadConfig(path string) (shellConfig, error) {
	cfg := shellConfig{Prompt: "arrhashsh> ", DefaultSlots: 1024, Format: "json"}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := sonnet.Unmarshal(standardized, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("arrhashsh", flag.ContinueOnError)
	fs.SetOutput(errOut)

	newTable := fs.BoolP("new", "n", false, "create a new table, truncating the file")
	slots := fs.IntP("slots", "s", 0, "slot count to use with --new (default: from config, else 1024)")
	configPath := fs.StringP("config", "c", defaultConfigPath(), "path to a HuJSON config file")
	format := fs.StringP("format", "f", "", "stats output format: json or yaml")
	verbose := fs.BoolP("verbose", "v", false, "log region/table open and close events to stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: arrhashsh [opts] <file>")
		return 2
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *slots > 0 {
		cfg.DefaultSlots = *slots
	}

	opts := defaultOptions
	if *verbose {
		opts.Log = func(msg string, args ...interface{}) {
			fmt.Fprintf(errOut, msg+"\n", args...)
		}
	}

	var (
		tbl *arrhash.Table
		r   region.Region
	)
	if *newTable {
		mf, err := region.CreateMappedFile(path, int64(arrhash.RegionBytes(cfg.DefaultSlots)), 0o600, &region.Options{Log: opts.Log})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		r = mf
		tbl, err = arrhash.Open(r, &arrhash.Options{Log: opts.Log})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	} else {
		mf, err := region.OpenMappedFile(path, false, &region.Options{Log: opts.Log})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		r = mf
		tbl, err = arrhash.OpenExisting(r, &arrhash.Options{Log: opts.Log})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	}
	defer r.Close()

	repl := &shell{tbl: tbl, out: out, errOut: errOut, cfg: cfg}
	return repl.run()
}

type shell struct {
	tbl    *arrhash.Table
	out    io.Writer
	errOut io.Writer
	cfg    shellConfig
}

func (s *shell) run() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt(s.cfg.Prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return 0
			}
			fmt.Fprintln(s.errOut, err)
			return 1
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit", "q":
			return 0
		case "help":
			fmt.Fprintln(s.out, "commands: put get del scan size stats dump export import clear exit")
		default:
			if err := s.dispatch(fields); err != nil {
				fmt.Fprintln(s.errOut, err)
			}
		}
	}
}

func (s *shell) dispatch(fields []string) error {
	switch fields[0] {
	case "put":
		if len(fields) != 3 {
			return fmt.Errorf("usage: put <key> <value>")
		}
		return s.tbl.Put([]byte(fields[1]), []byte(fields[2]))

	case "get":
		if len(fields) != 2 {
			return fmt.Errorf("usage: get <key>")
		}
		value, err := s.tbl.Get([]byte(fields[1]))
		if err != nil {
			fmt.Fprintln(s.out, "(not found)")
			return nil
		}
		fmt.Fprintf(s.out, "%s\n", value)
		return nil

	case "del":
		if len(fields) != 2 {
			return fmt.Errorf("usage: del <key>")
		}
		return s.tbl.Remove([]byte(fields[1]))

	case "scan":
		limit := -1
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("bad limit: %w", err)
			}
			limit = n
		}
		cursor := 0
		count := 0
		for limit < 0 || count < limit {
			key, value, idx, err := s.tbl.GetNext(&cursor)
			if err != nil {
				break
			}
			fmt.Fprintf(s.out, "%d\t%s\t%s\n", idx, key, value)
			count++
		}
		return nil

	case "size":
		num, used, max := s.tbl.Size()
		fmt.Fprintf(s.out, "num=%d usedSlots=%d maxSlots=%d\n", num, used, max)
		return nil

	case "stats":
		report := diag.Scan(s.tbl)
		return s.writeStats(report)

	case "dump":
		s.tbl.Debug(s.out)
		return nil

	case "export":
		if len(fields) != 2 {
			return fmt.Errorf("usage: export <path>")
		}
		return snapshot.Export(s.tbl, fields[1])

	case "import":
		if len(fields) != 2 {
			return fmt.Errorf("usage: import <path>")
		}
		n, err := snapshot.Import(s.tbl, fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "restored %d record(s)\n", n)
		return nil

	case "clear":
		s.tbl.Clear()
		return nil

	default:
		return fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
}

func (s *shell) writeStats(report diag.Report) error {
	switch s.cfg.Format {
	case "yaml":
		enc := yaml.NewEncoder(s.out)
		defer enc.Close()
		return enc.Encode(report)
	default:
		data, err := sonnet.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, string(data))
		return err
	}
}

