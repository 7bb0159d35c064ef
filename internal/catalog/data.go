package catalog

import (
	"time"

	"github.com/spf13/viper"
)

// web-monitoring-db API boundary

// Settings carries the connection parameters for the monitoring
// database API. Credentials come from the environment, same variables
// the other tools in this project family use.
type Settings struct {
	baseURL           string
	email             string
	password          string
	chunkSize         int
	requestsPerSecond float64
	pollInterval      time.Duration
}

func NewSettings(
	baseURL string,
	email string,
	password string,
	chunkSize int,
	requestsPerSecond float64,
	pollInterval time.Duration,
) Settings {
	return Settings{
		baseURL:           baseURL,
		email:             email,
		password:          password,
		chunkSize:         chunkSize,
		requestsPerSecond: requestsPerSecond,
		pollInterval:      pollInterval,
	}
}

// SettingsFromEnv reads settings from the environment:
// WEB_MONITORING_DB_URL, WEB_MONITORING_DB_EMAIL and
// WEB_MONITORING_DB_PASSWORD, with tuning defaults for everything else.
func SettingsFromEnv() Settings {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("WEB_MONITORING_DB_URL", "https://api.monitoring.envirodatagov.org")
	v.SetDefault("WEB_MONITORING_DB_CHUNK_SIZE", 1000)
	v.SetDefault("WEB_MONITORING_DB_RPS", 2.0)
	v.SetDefault("WEB_MONITORING_DB_POLL_INTERVAL", 2*time.Second)

	return NewSettings(
		v.GetString("WEB_MONITORING_DB_URL"),
		v.GetString("WEB_MONITORING_DB_EMAIL"),
		v.GetString("WEB_MONITORING_DB_PASSWORD"),
		v.GetInt("WEB_MONITORING_DB_CHUNK_SIZE"),
		v.GetFloat64("WEB_MONITORING_DB_RPS"),
		v.GetDuration("WEB_MONITORING_DB_POLL_INTERVAL"),
	)
}

func (s Settings) BaseURL() string {
	return s.baseURL
}

func (s Settings) Email() string {
	return s.email
}

func (s Settings) Password() string {
	return s.password
}

func (s Settings) ChunkSize() int {
	if s.chunkSize <= 0 {
		return 1000
	}
	return s.chunkSize
}

func (s Settings) RequestsPerSecond() float64 {
	if s.requestsPerSecond <= 0 {
		return 2.0
	}
	return s.requestsPerSecond
}

func (s Settings) PollInterval() time.Duration {
	if s.pollInterval <= 0 {
		return 2 * time.Second
	}
	return s.pollInterval
}

// Record is one network-error observation submitted to the monitoring
// database's import endpoint.
type Record struct {
	URL            string         `json:"url"`
	CaptureTime    string         `json:"capture_time"`
	NetworkError   string         `json:"network_error"`
	SourceType     string         `json:"source_type"`
	SourceMetadata map[string]any `json:"source_metadata"`
}

// ImportJob is the outcome of one import batch.
type ImportJob struct {
	id     int64
	errors []string
}

func NewImportJob(id int64, errors []string) ImportJob {
	return ImportJob{
		id:     id,
		errors: errors,
	}
}

func (j ImportJob) ID() int64 {
	return j.id
}

func (j ImportJob) Errors() []string {
	errors := make([]string, len(j.errors))
	copy(errors, j.errors)
	return errors
}

func (j ImportJob) ErrorCount() int {
	return len(j.errors)
}
