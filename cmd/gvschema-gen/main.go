// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command gvschema-gen reads a schema file and writes the generated C
// reader/formatter source to stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"

	"github.com/flatpak/gvschema-gen/internal/codegen"
	"github.com/flatpak/gvschema-gen/internal/schema/errors"
	"github.com/flatpak/gvschema-gen/internal/schema/parser"
	"github.com/flatpak/gvschema-gen/internal/types"
)

func main() {
	os.Exit(Main(os.Args[1:]))
}

// Main runs the command and returns the process exit code. It is split
// out from main so tests can invoke it without calling os.Exit.
func Main(args []string) (exitCode int) {
	args, err := prependEnvFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gvschema-gen:", err)
		return 1
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*errors.InternalInvariantError); ok {
				fmt.Fprintln(os.Stderr, "gvschema-gen:", ie.Error())
				exitCode = 1
				return
			}
			panic(r)
		}
	}()

	if err := cmd.Execute(); err != nil {
		// Parse/build errors are already printed one-per-line by run()
		// via errors.Print before it returns them; anything else (a
		// usage error, an I/O failure, cobra's own flag-parsing error)
		// still needs a single line on stderr.
		if _, ok := err.(errors.List); !ok {
			fmt.Fprintln(os.Stderr, "gvschema-gen:", err)
		}
		return 1
	}
	return 0
}

// prependEnvFlags honors GVSCHEMA_GEN_FLAGS, the Makefile-style escape
// hatch for callers that cannot easily extend an argv list: its contents
// are split shell-style and prepended ahead of the flags actually passed
// on the command line, so an explicit flag still wins any conflict.
func prependEnvFlags(args []string) ([]string, error) {
	env := os.Getenv("GVSCHEMA_GEN_FLAGS")
	if env == "" {
		return args, nil
	}
	extra, err := shlex.Split(env)
	if err != nil {
		return nil, fmt.Errorf("parsing GVSCHEMA_GEN_FLAGS: %w", err)
	}
	return append(extra, args...), nil
}

func newRootCmd() *cobra.Command {
	var (
		prefix    string
		debugDump bool
		stamp     bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "gvschema-gen SCHEMA_FILE",
		Short:         "emit zero-copy C accessors and formatters for a gvariant schema",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			return run(cmd, args[0], runOptions{
				prefix:    prefix,
				debugDump: debugDump,
				stamp:     stamp,
				logger:    logger,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&prefix, "prefix", "", "identifier prefix applied to every emitted C symbol")
	flags.BoolVar(&debugDump, "debug-dump", false, "pretty-print the resolved type registry to stderr before emission")
	flags.BoolVar(&stamp, "stamp", false, "embed a schema content digest and a generation id in the output header")
	flags.BoolVarP(&verbose, "verbose", "v", false, "raise logging from warn to debug")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type runOptions struct {
	prefix    string
	debugDump bool
	stamp     bool
	logger    *slog.Logger
}

func run(cmd *cobra.Command, schemaPath string, opts runOptions) error {
	src, err := os.ReadFile(schemaPath)
	if err != nil {
		return &errors.UsageError{Msg: fmt.Sprintf("reading %s: %v", schemaPath, err)}
	}
	opts.logger.Debug("read schema file", "path", schemaPath, "bytes", len(src))

	file, err := parser.ParseFile(schemaPath, src)
	if err != nil {
		errors.Print(cmd.ErrOrStderr(), toErrorList(err))
		return err
	}

	reg, err := types.Build(file)
	if err != nil {
		errors.Print(cmd.ErrOrStderr(), toErrorList(err))
		return err
	}
	opts.logger.Debug("parsed schema", "declarations", len(reg.Declared()))

	if opts.debugDump {
		fmt.Fprintf(cmd.ErrOrStderr(), "%# v\n", pretty.Formatter(reg.Declared()))
	}

	hdr := codegen.Header{Filename: schemaPath}
	if opts.stamp {
		hdr.Digest = digest.FromBytes(src).String()
		hdr.GenerationID = uuid.New().String()
		opts.logger.Debug("stamping output", "digest", hdr.Digest, "generation_id", hdr.GenerationID)
	}

	out, err := codegen.Generate(reg, hdr, codegen.Options{Prefix: opts.prefix})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// toErrorList normalizes the error types parser.ParseFile and
// types.Build can return into an errors.List, the only shape
// errors.Print knows how to walk one message per line.
func toErrorList(err error) errors.List {
	if list, ok := err.(errors.List); ok {
		return list
	}
	if se, ok := err.(*errors.SchemaError); ok {
		return errors.List{se}
	}
	return nil
}
