package commands

import (
	"EvidenceKeeper/internal/cli/api"
	"EvidenceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type SigninRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type signinCmd struct{}

func (signinCmd) Name() string        { return "signin" }
func (signinCmd) Description() string { return "Sign in and store auth token" }
func (signinCmd) Usage() string       { return "signin <email|username> <password>" }

func (signinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	login := strings.TrimSpace(args[0])
	req := SigninRequest{Password: args[1]}
	if strings.Contains(login, "@") {
		req.Email = login
	} else {
		req.Username = login
	}

	resp, body, err := api.Do(ctx, http.MethodPost, endpoint(cfg, "/user/signin"), req, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusNotFound:
		return errors.New("invalid login or password")
	default:
		return fmt.Errorf("server error: %s", api.ErrorMessage(body))
	}

	store := tokenStore(cfg)
	if err := api.PersistAuthFromResponse(resp, store); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := store.SaveLogin(login); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintln(Out, "Signed in successfully")
	return nil
}

func init() { RegisterCmd(SectionSession, signinCmd{}) }
