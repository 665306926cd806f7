package commands

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/model"
	"context"
	"fmt"
	"net/http"
)

type scanCmd struct{}

func (scanCmd) Name() string        { return "scan" }
func (scanCmd) Description() string { return "Look up a property by its tag and log the scan" }
func (scanCmd) Usage() string       { return "scan <token>" }

func (scanCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var out struct {
		Property model.Property `json:"property"`
	}
	if err := call(ctx, cfg, http.MethodPost, "/case/scan/"+seg(args[0]), nil, &out); err != nil {
		return err
	}
	p := out.Property
	fmt.Fprintf(Out, "%s  %s x%d  [%s]\n", p.ID, p.Category, p.Quantity, p.Status)
	fmt.Fprintf(Out, "%s\n", p.Description)
	fmt.Fprintf(Out, "Location: %s\n", p.Location)
	if p.Case != nil {
		fmt.Fprintf(Out, "Case:     %s (IO %s)\n", p.Case.CrimeNumber, p.Case.IOName)
	}
	if len(p.CustodyLogs) > 0 {
		fmt.Fprintf(Out, "Holder:   %s\n", p.CustodyLogs[0].ToOfficer)
	}
	return nil
}

// TransferRequest — тело запроса передачи.
type TransferRequest struct {
	ToOfficer   string  `json:"toOfficer"`
	Purpose     string  `json:"purpose"`
	Remarks     *string `json:"remarks,omitempty"`
	NewLocation string  `json:"newLocation"`
}

type moveCmd struct{}

func (moveCmd) Name() string        { return "move" }
func (moveCmd) Description() string { return "Hand a property over to another officer" }
func (moveCmd) Usage() string {
	return "move <property-id> <to-officer> <purpose> <new-location> [remarks]"
}

func (moveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return ErrUsage
	}
	req := TransferRequest{ToOfficer: args[1], Purpose: args[2], NewLocation: args[3], Remarks: optional(args, 4)}
	var out struct {
		Log model.CustodyLog `json:"log"`
	}
	if err := call(ctx, cfg, http.MethodPost, "/case/property/"+seg(args[0])+"/move", req, &out); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Handover complete: %s -> %s (%s)\n", out.Log.FromOfficer, out.Log.ToOfficer, out.Log.Purpose)
	return nil
}

// DisposeRequest — тело запроса распоряжения.
type DisposeRequest struct {
	Type           string  `json:"type"`
	CourtOrderRef  string  `json:"courtOrderRef"`
	DateOfDisposal string  `json:"dateOfDisposal"`
	Remarks        *string `json:"remarks,omitempty"`
}

type disposeCmd struct{}

func (disposeCmd) Name() string        { return "dispose" }
func (disposeCmd) Description() string { return "Record the final disposal of a property" }
func (disposeCmd) Usage() string {
	return "dispose <property-id> <type> <court-order-ref> <date> [remarks]"
}

func (disposeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return ErrUsage
	}
	req := DisposeRequest{Type: args[1], CourtOrderRef: args[2], DateOfDisposal: args[3], Remarks: optional(args, 4)}
	var out struct {
		Disposal   model.Disposal `json:"disposal"`
		CaseClosed bool           `json:"caseClosed"`
	}
	if err := call(ctx, cfg, http.MethodPost, "/case/property/"+seg(args[0])+"/dispose", req, &out); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Disposal recorded: %s, order %s\n", out.Disposal.Type, out.Disposal.CourtOrderRef)
	if out.CaseClosed {
		fmt.Fprintln(Out, "All properties disposed, case closed")
	}
	return nil
}

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Show the custody chain of a property" }
func (historyCmd) Usage() string       { return "history <property-id>" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	var out struct {
		CurrentPossessor string             `json:"currentPossessor"`
		Location         string             `json:"location"`
		Logs             []model.CustodyLog `json:"logs"`
	}
	if err := call(ctx, cfg, http.MethodGet, "/case/property/"+seg(args[0])+"/custody", nil, &out); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Possessor: %s\n", out.CurrentPossessor)
	fmt.Fprintf(Out, "Location:  %s\n", out.Location)
	if len(out.Logs) == 0 {
		fmt.Fprintln(Out, "Передач не было")
		return nil
	}
	for _, l := range out.Logs {
		fmt.Fprintf(Out, "- %s  %s -> %s  (%s)\n", l.MovedAt.Format("2006-01-02 15:04"), l.FromOfficer, l.ToOfficer, l.Purpose)
	}
	return nil
}

func init() {
	RegisterCmd(SectionCustody, scanCmd{})
	RegisterCmd(SectionCustody, moveCmd{})
	RegisterCmd(SectionCustody, disposeCmd{})
	RegisterCmd(SectionCustody, historyCmd{})
}
