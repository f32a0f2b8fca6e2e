// Package cmd has all command line commands. Each one gets the shared database
// provider through SetCommon before Execute is called.
package cmd

import (
	"context"
	"io"

	"github.com/umputun/staffdb/app/store"
)

// CommonOptionsCommander extends flags.Commander with SetCommon
// All commands should implement this interface
type CommonOptionsCommander interface {
	SetCommon(commonOpts CommonOpts)
	Execute(args []string) error
}

// CommonOpts sets externally from main, shared across all commands
type CommonOpts struct {
	Ctx      context.Context
	Provider *store.Provider
	Out      io.Writer
	Version  string
}

// SetCommon satisfies CommonOptionsCommander interface and sets common option fields
func (c *CommonOpts) SetCommon(commonOpts CommonOpts) {
	*c = commonOpts
}

func (c *CommonOpts) execCtx() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
