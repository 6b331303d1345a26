package config

import (
	"flag"
	"os"
	"time"

	"github.com/pulsepal/pulsepal/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (postgres:// or a SQLite path)
//	-i string   internal tool-surface shared secret
//	-t int      external model call timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.InternalAPIKey, "i", config.InternalAPIKey, "internal API key")

	llmTimeout := fs.Int("t", int(config.LLMTimeout.Seconds()), "model call timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LLMTimeout = time.Duration(*llmTimeout) * time.Second
}
