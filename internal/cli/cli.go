// Package cli carries plumbing shared by every command group: ARM client
// construction with a test seam, output selection, table and JSON
// rendering, prompts, and flag resolution against persisted config.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/aznet/internal/azure"
	"nathanbeddoewebdev/aznet/internal/config"
	"nathanbeddoewebdev/aznet/internal/services/auth"
)

// ClientsFactory builds the ARM clients and session for a command.
type ClientsFactory func(cmd *cobra.Command) (*azure.Clients, *azure.Session, error)

var clientsFactory ClientsFactory = defaultClients

// Clients resolves the ARM clients for a command, honoring the
// persistent --subscription flag and the saved configuration.
func Clients(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
	return clientsFactory(cmd)
}

// SetClientsFactory replaces the client constructor. Intended for tests.
func SetClientsFactory(f ClientsFactory) { clientsFactory = f }

// ResetClientsFactory restores the default constructor.
func ResetClientsFactory() { clientsFactory = defaultClients }

func defaultClients(cmd *cobra.Command) (*azure.Clients, *azure.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	session, err := azure.NewSession(cfg, auth.DefaultStore(), FlagString(cmd, "subscription"))
	if err != nil {
		return nil, nil, err
	}

	clients, err := azure.NewClients(session)
	if err != nil {
		return nil, nil, err
	}
	return clients, session, nil
}

// FlagString reads a flag that may live on the command or an ancestor,
// returning "" when it is not registered at all.
func FlagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// FlagBool parses a tri-state string flag declared as "true|false". String
// flags keep the space-separated form working: --enable-bgp true.
func FlagBool(cmd *cobra.Command, name string) (bool, error) {
	raw, _ := cmd.Flags().GetString(name)
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid --%s %q (expected true or false)", name, raw)
	}
	return v, nil
}
