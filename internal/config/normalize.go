package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// CollectDir stays empty when relocation is disabled.
	if strings.TrimSpace(c.Paths.CollectDir) != "" {
		if c.Paths.CollectDir, err = expandPath(c.Paths.CollectDir); err != nil {
			return fmt.Errorf("paths.collect_dir: %w", err)
		}
	} else {
		c.Paths.CollectDir = ""
	}
	return nil
}

func (c *Config) normalizeScanner() {
	if c.Scanner.Workers == 0 {
		c.Scanner.Workers = defaultWorkers
	}
	c.Scanner.SniffCommand = strings.TrimSpace(c.Scanner.SniffCommand)
	if c.Scanner.SniffCommand == "" {
		c.Scanner.SniffCommand = defaultSniffCommand
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
