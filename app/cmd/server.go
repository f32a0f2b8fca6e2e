package cmd

import (
	"github.com/umputun/staffdb/app/store"
	"github.com/umputun/staffdb/app/web"
)

// ServerCommand runs the local http api
type ServerCommand struct {
	Listen     string  `long:"listen" env:"STAFFDB_LISTEN" default:"127.0.0.1:8080" description:"listen address"`
	InsertRate float64 `long:"insert-rate" env:"STAFFDB_INSERT_RATE" default:"10" description:"max inserts per second per client"`

	CommonOpts
}

// Execute makes sure the table exists and serves requests until the context is canceled
func (c *ServerCommand) Execute(_ []string) error {
	db, err := c.Provider.Connection(c.execCtx())
	if err != nil {
		return err
	}
	if err = store.EnsureSchema(c.execCtx(), db); err != nil {
		return err
	}

	srv, err := web.New(web.Config{Connector: c.Provider, Version: c.Version, InsertRate: c.InsertRate})
	if err != nil {
		return err
	}
	return srv.Run(c.execCtx(), c.Listen)
}
