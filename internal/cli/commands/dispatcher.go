package commands

import (
	"EvidenceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Коды выхода ekcli. Скрипты дежурной части различают по ним отказ в передаче
// (вещдок у другого сотрудника) и повторное распоряжение.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitDenied      = 3
	ExitNotFound    = 4
	ExitConflict    = 5
	ExitInterrupted = 130
)

var exitMeaning = map[int]string{
	ExitOK:       "success",
	ExitFailure:  "server or network error",
	ExitUsage:    "bad arguments or unknown command",
	ExitDenied:   "not signed in, or the property is held by another officer",
	ExitNotFound: "case, property or tag not found",
	ExitConflict: "already disposed or duplicate record",
}

// ExitCode переводит ошибку команды в код выхода.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}
	if errors.Is(err, ErrNotSignedIn) {
		return ExitDenied
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var se *serverError
	if errors.As(err, &se) {
		switch se.status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ExitDenied
		case http.StatusNotFound:
			return ExitNotFound
		case http.StatusConflict:
			return ExitConflict
		}
	}
	return ExitFailure
}

// Dispatch выполняет команду из args и возвращает код выхода процесса.
// Флаги уже разобраны в config.NewConfig, args — оставшиеся позиционные аргументы.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	name := strings.ToLower(args[0])
	switch name {
	case "help", "-h", "--help":
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: ekcli %s\n  %s\n", c.Usage(), c.Description())
			return ExitOK
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	err := c.Run(ctx, cfg, args[1:])
	code := ExitCode(err)
	switch code {
	case ExitOK:
	case ExitUsage:
		fmt.Fprintf(Out, "Usage: ekcli %s\n", c.Usage())
	default:
		fmt.Fprintf(Out, "%s: %v\n", name, err)
	}
	return code
}
