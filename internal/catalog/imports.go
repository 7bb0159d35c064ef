package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type importResponse struct {
	Data struct {
		ID               int64    `json:"id"`
		Status           string   `json:"status"`
		ProcessingErrors []string `json:"processing_errors"`
	} `json:"data"`
}

// ImportNetworkErrors submits network-error records to the monitoring
// database in chunked import jobs and waits for each job to finish
// processing. Per-job processing errors are returned for reporting;
// they are data, not failures.
func (c *Client) ImportNetworkErrors(ctx context.Context, records []Record) ([]ImportJob, failure.ClassifiedError) {
	var jobs []ImportJob

	chunkSize := c.settings.ChunkSize()
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		jobID, err := c.submitImport(ctx, records[start:end])
		if err != nil {
			return jobs, err
		}

		job, err := c.awaitImport(ctx, jobID)
		if err != nil {
			return jobs, err
		}

		c.logger.Info("import job finished",
			zap.Int64("job", job.ID()),
			zap.Int("records", end-start),
			zap.Int("errors", job.ErrorCount()),
		)
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (c *Client) submitImport(ctx context.Context, records []Record) (int64, failure.ClassifiedError) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}

	body, err := json.Marshal(records)
	if err != nil {
		return 0, &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.settings.BaseURL()+"/api/v0/imports?update=merge",
		bytes.NewReader(body),
	)
	if err != nil {
		return 0, &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, &CatalogError{
			Message: fmt.Sprintf("%s from import submission", resp.Status),
			Cause:   ErrCauseUnexpectedStatus,
		}
	}

	var decoded importResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseBadResponse,
		}
	}
	return decoded.Data.ID, nil
}

// awaitImport polls the job until the server reports it complete.
func (c *Client) awaitImport(ctx context.Context, jobID int64) (ImportJob, failure.ClassifiedError) {
	statusURL := fmt.Sprintf("%s/api/v0/imports/%d", c.settings.BaseURL(), jobID)

	for {
		var decoded importResponse
		if err := c.getJSON(ctx, statusURL, &decoded); err != nil {
			return ImportJob{}, err
		}

		if decoded.Data.Status == "complete" {
			return NewImportJob(jobID, decoded.Data.ProcessingErrors), nil
		}

		select {
		case <-ctx.Done():
			return ImportJob{}, &CatalogError{
				Message: ctx.Err().Error(),
				Cause:   ErrCauseRequestFailed,
			}
		case <-time.After(c.settings.PollInterval()):
		}
	}
}
