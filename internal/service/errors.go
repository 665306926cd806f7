package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation  = errors.New("invalid input")
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrLoginTaken  = errors.New("login already taken")
	ErrBadPassword = errors.New("invalid credentials")

	ErrAlreadyDisposed = errors.New("property already disposed")
	ErrDisposalExists  = errors.New("disposal already recorded")
	ErrDuplicateToken  = errors.New("property tag collision")

	ErrDuplicateCaseNumber = errors.New("case number already registered")
)

// FieldError — одно нарушенное правило во входных данных.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError перечисляет все некорректные поля запроса.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidField(field, rule string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule}}}
}

// CaseNumberTakenError — номер, выданный счётчиком, уже занят делом, внесённым в обход него.
type CaseNumberTakenError struct {
	Number string
}

func (e *CaseNumberTakenError) Error() string {
	return fmt.Sprintf("case number %s already registered, counter is behind existing cases", e.Number)
}

func (e *CaseNumberTakenError) Unwrap() error { return ErrDuplicateCaseNumber }

// NotPossessorError — сотрудник не держит вещдок и не владеет делом.
type NotPossessorError struct {
	Possessor string
}

func (e *NotPossessorError) Error() string {
	return fmt.Sprintf("access denied, current possessor is %s", e.Possessor)
}

func (e *NotPossessorError) Unwrap() error { return ErrForbidden }
