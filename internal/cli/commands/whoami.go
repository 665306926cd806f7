package commands

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/model"
	"context"
	"fmt"
	"net/http"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the signed-in officer" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var out struct {
		User struct {
			model.User
			CaseCount int64 `json:"caseCount"`
		} `json:"user"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/user/info", nil, &out); err != nil {
		return err
	}
	u := out.User
	fmt.Fprintf(Out, "%s %s (%s)\n", u.Rank, u.FullName(), u.Username)
	fmt.Fprintf(Out, "Email:   %s\n", u.Email)
	if u.StationID != "" {
		fmt.Fprintf(Out, "Station: %s\n", u.StationID)
	}
	fmt.Fprintf(Out, "Role:    %s\n", u.Role)
	fmt.Fprintf(Out, "Cases:   %d\n", u.CaseCount)
	return nil
}

func init() { RegisterCmd(SectionSession, whoamiCmd{}) }
