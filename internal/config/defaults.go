package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.Backend.UploadTimeoutSec == 0 {
		cfg.Backend.UploadTimeoutSec = 30
	}
	if cfg.Backend.QueryTimeoutSec == 0 {
		cfg.Backend.QueryTimeoutSec = 120
	}
	if cfg.Backend.PollIntervalMs == 0 {
		cfg.Backend.PollIntervalMs = 1000
	}
	if cfg.Backend.PollDeadlineSec == 0 {
		cfg.Backend.PollDeadlineSec = 300
	}
	if cfg.Backend.TopK == 0 {
		cfg.Backend.TopK = 5
	}
	if cfg.Grounding.MinOverlap == 0 {
		cfg.Grounding.MinOverlap = 3
	}
	if cfg.Grounding.MinWordLength == 0 {
		cfg.Grounding.MinWordLength = 4
	}
	if cfg.Storage.HistoryDatabasePath == "" {
		cfg.Storage.HistoryDatabasePath = "/usr/local/var/kaisetsu/data/db/history.db"
	}
	if cfg.Storage.HistoryIndexPath == "" {
		cfg.Storage.HistoryIndexPath = "/usr/local/var/kaisetsu/data/indices/history"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".txt", ".md", ".rst", ".pdf", ".docx", ".odt", ".xlsx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
