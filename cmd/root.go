package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"nathanbeddoewebdev/aznet/cmd/commands/appgateway"
	"nathanbeddoewebdev/aznet/cmd/commands/audit"
	"nathanbeddoewebdev/aznet/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/aznet/cmd/commands/config"
	"nathanbeddoewebdev/aznet/cmd/commands/dns"
	"nathanbeddoewebdev/aznet/cmd/commands/expressroute"
	"nathanbeddoewebdev/aznet/cmd/commands/group"
	"nathanbeddoewebdev/aznet/cmd/commands/lb"
	"nathanbeddoewebdev/aznet/cmd/commands/localgateway"
	"nathanbeddoewebdev/aznet/cmd/commands/nic"
	"nathanbeddoewebdev/aznet/cmd/commands/nsg"
	"nathanbeddoewebdev/aznet/cmd/commands/operation"
	"nathanbeddoewebdev/aznet/cmd/commands/publicip"
	"nathanbeddoewebdev/aznet/cmd/commands/routetable"
	"nathanbeddoewebdev/aznet/cmd/commands/tag"
	"nathanbeddoewebdev/aznet/cmd/commands/trafficmanager"
	"nathanbeddoewebdev/aznet/cmd/commands/vnet"
	"nathanbeddoewebdev/aznet/cmd/commands/vpnconnection"
	"nathanbeddoewebdev/aznet/cmd/commands/vpngateway"
	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/auditlog"
	"nathanbeddoewebdev/aznet/internal/azure"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "aznet",
		Short: "A CLI tool for managing Azure network and DNS resources",
		Long: `aznet is a command-line tool for managing Azure network resources:
virtual networks, security groups, load balancers, application gateways,
VPN and ExpressRoute connectivity, DNS zones, and Traffic Manager
profiles.

Quick start:
  aznet auth login --tenant <id> --client-id <id>   # Store a service principal
  aznet config set subscription <id>                # Pick a subscription
  aznet vnet list                                   # List virtual networks
  aznet dns zone export -g rg -n example.com        # Export a DNS zone`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				azure.EnableDebugLogging(cmd.ErrOrStderr())
			}
		},
	}

	cmd.PersistentFlags().String("subscription", "", "Subscription ID (overrides the configured default)")
	cmd.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")
	cmd.PersistentFlags().Bool("debug", false, "Log service requests and responses to stderr")

	cmd.AddCommand(appgateway.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(dns.NewCommand())
	cmd.AddCommand(expressroute.NewCommand())
	cmd.AddCommand(group.NewCommand())
	cmd.AddCommand(lb.NewCommand())
	cmd.AddCommand(localgateway.NewCommand())
	cmd.AddCommand(nic.NewCommand())
	cmd.AddCommand(nsg.NewCommand())
	cmd.AddCommand(operation.NewCommand())
	cmd.AddCommand(publicip.NewCommand())
	cmd.AddCommand(routetable.NewCommand())
	cmd.AddCommand(tag.NewCommand())
	cmd.AddCommand(trafficmanager.NewCommand())
	cmd.AddCommand(vnet.NewCommand())
	cmd.AddCommand(vpnconnection.NewCommand())
	cmd.AddCommand(vpngateway.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.EnableTraverseRunHooks = true

	root := rootCmd()
	start := time.Now()
	executed, err := root.ExecuteC()
	recordAudit(executed, start, err)
	if err != nil {
		os.Exit(1)
	}
}

// recordAudit persists an audit entry for commands that attached metadata
// during their run. Read-only commands attach nothing and are skipped.
// Failures here only warn; the command's own outcome stands.
func recordAudit(executed *cobra.Command, start time.Time, runErr error) {
	if executed == nil {
		return
	}
	meta := auditlog.MetadataFromContext(executed.Context())
	if meta == (auditlog.Metadata{}) {
		return
	}

	repo, err := auditlog.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audit log unavailable: %v\n", err)
		return
	}
	defer repo.Close()

	outcome := auditlog.OutcomeSuccess
	detail := ""
	if runErr != nil {
		outcome = auditlog.OutcomeError
		detail = runErr.Error()
	}

	subscription := meta.Subscription
	if subscription == "" {
		subscription = armutil.SubscriptionOf(meta.ResourceID)
	}

	entry := &auditlog.AuditEntry{
		Command:      executed.CommandPath(),
		Args:         strings.Join(auditlog.SanitizeArgs(os.Args[1:]), " "),
		Subscription: subscription,
		Service:      meta.Service,
		ResourceType: meta.ResourceType,
		ResourceID:   meta.ResourceID,
		ResourceName: meta.ResourceName,
		Outcome:      outcome,
		Detail:       detail,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if err := repo.Save(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record audit entry: %v\n", err)
	}
}
