package commands

import (
	"EvidenceKeeper/internal/config"
	"context"
	"fmt"
)

type signoutCmd struct{}

func (signoutCmd) Name() string        { return "signout" }
func (signoutCmd) Description() string { return "Forget the stored session token" }
func (signoutCmd) Usage() string       { return "signout" }

func (signoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	store := tokenStore(cfg)
	login, _ := store.LoadLogin()
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if login != "" {
		fmt.Fprintf(Out, "Signed out %s\n", login)
		return nil
	}
	fmt.Fprintln(Out, "Signed out")
	return nil
}

func init() { RegisterCmd(SectionSession, signoutCmd{}) }
