package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/staffdb/app/cmd"
	"github.com/umputun/staffdb/app/store"
)

var opts struct {
	DB  string `long:"db" env:"STAFFDB_DB" default:"meu_banco.db" description:"sqlite database file"`
	Dbg bool   `long:"dbg" env:"STAFFDB_DEBUG" description:"debug mode"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"write logs to a rotated file"`
		Filename        string `long:"file" env:"FILE" default:"staffdb.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of rotated files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"30" description:"max days to keep rotated files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated files"`
	} `group:"log" namespace:"log" env-namespace:"STAFFDB_LOG"`

	CheckCmd  cmd.CheckCommand  `command:"check" description:"test database connection"`
	InitCmd   cmd.InitCommand   `command:"init" description:"create employee table"`
	AddCmd    cmd.AddCommand    `command:"add" description:"add employee"`
	SearchCmd cmd.SearchCommand `command:"search" description:"search employees"`
	ImportCmd cmd.ImportCommand `command:"import" description:"import employees from yaml or json file"`
	ServerCmd cmd.ServerCommand `command:"server" description:"run local http api"`
}

var revision = "unknown"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	stop := signals(cancel)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// run parses args and executes the selected command with a shared database provider.
// Cancelling ctx stops long-running commands like server.
func run(ctx context.Context, args []string, out io.Writer) error {
	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(command flags.Commander, cmdArgs []string) error {
		setupLogs()
		log.Printf("[DEBUG] staffdb %s, database %s", revision, opts.DB)

		c, ok := command.(cmd.CommonOptionsCommander)
		if !ok {
			return fmt.Errorf("unsupported command %T", command)
		}

		provider := store.NewProvider(opts.DB)
		defer func() {
			if err := provider.Close(); err != nil {
				log.Printf("[WARN] %v", err)
			}
		}()

		c.SetCommon(cmd.CommonOpts{Ctx: ctx, Provider: provider, Out: out, Version: revision})
		return c.Execute(cmdArgs)
	}

	if _, err := p.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// setupLogs configures lgr and returns the writer logs go to
func setupLogs() io.Writer {
	var out io.Writer = os.Stderr
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Dbg {
		log.Setup(log.Debug, log.Msec, log.LevelBraces, log.CallerFunc, log.CallerPkg, log.CallerFile, log.Out(out), log.Err(out))
		return out
	}
	log.Setup(log.Msec, log.LevelBraces, log.Out(out), log.Err(out))
	return out
}

// signals cancels on SIGTERM and SIGINT and dumps goroutine stacks on SIGQUIT.
// The returned func unregisters the handler and ends its goroutine.
func signals(cancel context.CancelFunc) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM and SIGINT
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	return func() {
		signal.Stop(sigChan)
		close(sigChan)
	}
}
