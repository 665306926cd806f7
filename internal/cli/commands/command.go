package commands

import (
	"EvidenceKeeper/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage — неверные аргументы, диспетчер покажет строку Usage команды.
var ErrUsage = errors.New("usage")

// Section — раздел справки, в котором показывается команда.
type Section int

const (
	SectionSession Section = iota
	SectionCases
	SectionCustody
)

var sectionTitles = map[Section]string{
	SectionSession: "Session",
	SectionCases:   "Cases",
	SectionCustody: "Custody and disposal",
}

// Command — подкоманда ekcli.
type Command interface {
	// Name — имя, которое набирает сотрудник, например "move".
	Name() string
	Description() string
	// Usage — строка использования без имени программы: "scan <token>".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

type entry struct {
	cmd     Command
	section Section
}

var registry = map[string]entry{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd добавляет команду в раздел справки. Вызывается из init() файла команды.
func RegisterCmd(section Section, cmd Command) {
	registry[cmd.Name()] = entry{cmd: cmd, section: section}
}

func Get(name string) (Command, bool) {
	e, ok := registry[strings.ToLower(name)]
	return e.cmd, ok
}

// List возвращает команды по разделам, внутри раздела по имени.
func List() []Command {
	entries := make([]entry, 0, len(registry))
	for _, e := range registry {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].section != entries[j].section {
			return entries[i].section < entries[j].section
		}
		return entries[i].cmd.Name() < entries[j].cmd.Name()
	})
	list := make([]Command, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.cmd)
	}
	return list
}

// FormatGlobalUsage собирает общую справку: флаги, разделы команд и коды выхода.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("EvidenceKeeper CLI: evidence room custody from the terminal\n\n")
	b.WriteString("Usage:\n  ekcli [-base-url <host:port>] [-token-file <path>] <command> [args]\n")

	width := 0
	for _, c := range List() {
		if n := len(c.Usage()); n > width {
			width = n
		}
	}
	current := Section(-1)
	for _, c := range List() {
		if s := registry[c.Name()].section; s != current {
			current = s
			fmt.Fprintf(&b, "\n%s:\n", sectionTitles[s])
		}
		fmt.Fprintf(&b, "  %-*s  %s\n", width, c.Usage(), c.Description())
	}

	b.WriteString("\nExit codes:\n")
	for _, code := range []int{ExitOK, ExitFailure, ExitUsage, ExitDenied, ExitNotFound, ExitConflict} {
		fmt.Fprintf(&b, "  %d  %s\n", code, exitMeaning[code])
	}
	return b.String()
}
