package commands

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

type createCaseCmd struct{}

func (createCaseCmd) Name() string { return "create-case" }
func (createCaseCmd) Description() string {
	return "Register a case with its properties from a JSON file"
}
func (createCaseCmd) Usage() string { return "create-case <file.json>" }

func (createCaseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	// файл уходит на сервер как есть, проверяем только что это JSON-объект
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	var out struct {
		Case model.Case `json:"case"`
	}
	if err := call(ctx, cfg, http.MethodPost, "/case/create", payload, &out); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Case registered: %s (id %s)\n", out.Case.CrimeNumber, out.Case.ID)
	for _, p := range out.Case.Properties {
		fmt.Fprintf(Out, "  %s  %-12s tag=%s\n", p.ID, p.Category, p.QRString)
	}
	return nil
}

type caseCmd struct{}

func (caseCmd) Name() string        { return "case" }
func (caseCmd) Description() string { return "Show a case by id or FIR number" }
func (caseCmd) Usage() string       { return "case <id|FIR>" }

func (caseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var out struct {
		Case model.Case `json:"case"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/case/specific/"+seg(args[0]), nil, &out); err != nil {
		return err
	}
	c := out.Case
	fmt.Fprintf(Out, "%s  [%s]\n", c.CrimeNumber, c.Status)
	fmt.Fprintf(Out, "Station: %s  IO: %s (%s)\n", c.PoliceStation, c.IOName, c.IOID)
	fmt.Fprintf(Out, "Law:     %s %s\n", c.ActLaw, c.SectionLaw)
	fmt.Fprintf(Out, "FIR:     %s  Seized: %s\n", c.FIRDate.Format("2006-01-02"), c.SeizureDate.Format("2006-01-02"))
	if len(c.Properties) == 0 {
		fmt.Fprintln(Out, "Нет вещдоков")
		return nil
	}
	for _, p := range c.Properties {
		fmt.Fprintf(Out, "- %s  %-12s x%d  %-10s  %s  @ %s\n", p.ID, p.Category, p.Quantity, p.Status, p.Description, p.Location)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(c.Properties))
	return nil
}

func init() {
	RegisterCmd(SectionCases, createCaseCmd{})
	RegisterCmd(SectionCases, caseCmd{})
}
