package commands

import (
	"EvidenceKeeper/internal/cli/api"
	"EvidenceKeeper/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type dataResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check the server and the stored session" }
func (statusCmd) Usage() string       { return "status" }

// Run работает и без входа: сервер ответит anonymous.
func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, _ := tokenStore(cfg).Load()
	resp, body, err := api.Do(ctx, http.MethodPost, endpoint(cfg, "/user/test"), struct{}{}, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var dr dataResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintln(Out, "Status:", dr.Result)
	return nil
}

func init() { RegisterCmd(SectionSession, statusCmd{}) }
