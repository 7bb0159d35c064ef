package catalog

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type CatalogErrorCause string

const (
	ErrCauseRequestFailed    CatalogErrorCause = "request failed"
	ErrCauseUnexpectedStatus CatalogErrorCause = "unexpected response status"
	ErrCauseBadResponse      CatalogErrorCause = "response does not decode"
	ErrCauseBadPattern       CatalogErrorCause = "pattern does not compile"
)

// CatalogError reports a failure talking to the monitoring database
// API. Always fatal: without the catalog there is nothing to generate
// seeds from.
type CatalogError struct {
	Message string
	Cause   CatalogErrorCause
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error: %s: %s", e.Cause, e.Message)
}

func (e *CatalogError) Severity() failure.Severity {
	return failure.SeverityFatal
}
