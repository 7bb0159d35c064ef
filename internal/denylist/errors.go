package denylist

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type RulesErrorCause string

const (
	ErrCauseFileUnreadable RulesErrorCause = "rules file unreadable"
	ErrCauseParseFail      RulesErrorCause = "rules file does not parse"
	ErrCauseBadScope       RulesErrorCause = "unknown exemption scope"
)

type RulesError struct {
	Message string
	Cause   RulesErrorCause
}

func (e *RulesError) Error() string {
	return fmt.Sprintf("denylist error: %s: %s", e.Cause, e.Message)
}

func (e *RulesError) Severity() failure.Severity {
	return failure.SeverityFatal
}
