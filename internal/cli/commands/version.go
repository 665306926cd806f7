package commands

import (
	"EvidenceKeeper/internal/config"
	"context"
	"fmt"
)

// Проставляются из main через SetBuildInfo (ldflags -X main.version=...).
var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func SetBuildInfo(version, date string) {
	buildVersion, buildDate = version, date
}

type versionCmd struct{}

func (versionCmd) Name() string        { return "version" }
func (versionCmd) Description() string { return "Show client version and the configured server" }
func (versionCmd) Usage() string       { return "version" }

func (versionCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fmt.Fprintf(Out, "ekcli %s (built %s)\n", buildVersion, buildDate)
	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	return nil
}

func init() { RegisterCmd(SectionSession, versionCmd{}) }
