package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle version command
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v" || os.Args[1] == "version") {
		fmt.Printf("journal2gelf %s\n", Version)
		fmt.Printf("Build date: %s\n", BuildDate)
		fmt.Printf("Git commit: %s\n", GitCommit)
		return
	}

	// Handle help command
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "help") {
		fmt.Printf("journal2gelf %s\n\n", Version)
		fmt.Printf("Streams journal records to a GELF endpoint over UDP.\n\n")
		fmt.Printf("USAGE:\n")
		fmt.Printf("  journal2gelf [OPTIONS]\n\n")
		fmt.Printf("OPTIONS:\n")
		fmt.Printf("  --config       Path to configuration file\n")
		fmt.Printf("  --host         GELF destination host (default localhost)\n")
		fmt.Printf("  --port         GELF destination port (default 12201)\n")
		fmt.Printf("  --tail         Follow the local journal via journalctl\n")
		fmt.Printf("  --multiline    Input uses the legacy pretty-printed array format\n")
		fmt.Printf("  --files        Comma-separated exported journal dump patterns\n")
		fmt.Printf("  --match        JMESPath expression records must satisfy\n")
		fmt.Printf("  --compression  zlib compression level for GELF payloads\n")
		fmt.Printf("  --version      Show version information\n")
		fmt.Printf("  --help         Show this help message\n\n")
		fmt.Printf("EXAMPLES:\n")
		fmt.Printf("  journalctl -o json -f | journal2gelf --host graylog.example.com\n")
		fmt.Printf("  journal2gelf --tail --match 'level <= `4`'\n")
		fmt.Printf("  journal2gelf --files '/var/backups/journal/**/*.json'\n")
		return
	}

	cfg := loadConfig()

	gelf, err := newGELFSink(cfg.Target.Host, cfg.Target.Port)
	if err != nil {
		log.Fatalf("sink: %v", err)
	}
	defer gelf.Close()

	m, err := newMatcher(cfg.Match)
	if err != nil {
		log.Fatalf("match: %v", err)
	}

	t := newTranscoder(cfg.Input.Multiline, gelf, m, cfg.Compression)

	if os.Getenv("DEBUG") == "1" {
		log.Printf("Starting journal2gelf (target=%s:%d, tail=%v, multiline=%v)",
			cfg.Target.Host, cfg.Target.Port, cfg.Input.Tail, cfg.Input.Multiline)
	}

	switch {
	case len(cfg.Input.Files) > 0:
		files, err := discoverDumps(cfg.Input.Files, cfg.Input.Exclude)
		if err != nil {
			log.Fatalf("discover: %v", err)
		}
		if len(files) == 0 {
			log.Println("no journal dumps matched")
			return
		}
		for _, path := range files {
			if err := transcodeFile(t, path); err != nil {
				log.Printf("ERROR: %s: %v", path, err)
			}
		}

	case cfg.Input.Tail:
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-stop
			cancel()
		}()

		out, cmd, err := startJournal(ctx)
		if err != nil {
			log.Fatalf("journalctl: %v", err)
		}
		if err := t.run(out); err != nil {
			log.Printf("ERROR: journal stream: %v", err)
		}
		if err := cmd.Wait(); err != nil {
			log.Printf("ERROR: journalctl exited: %v", err)
		}

	default:
		if err := t.run(os.Stdin); err != nil {
			log.Printf("ERROR: stdin: %v", err)
		}
	}

	if os.Getenv("DEBUG") == "1" {
		log.Printf("forwarded %d records", t.sent)
	}
}

func transcodeFile(t *transcoder, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.run(f)
}
