// Package config holds the configuration surface of the importer: the
// alias-to-account map, the optional YAML config file and the environment
// bootstrap for secrets. Everything is validated before any I/O starts.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration file. Flags override its values;
// it mainly spares retyping the IMAP settings and the account map.
type File struct {
	AccessToken string            `yaml:"access_token"`
	BudgetID    string            `yaml:"budget_id"`
	AccountMap  map[string]string `yaml:"account_map"`
	IMAP        IMAP              `yaml:"imap"`
}

// IMAP holds the mail-transport settings for the notification import.
type IMAP struct {
	Server   string `yaml:"server"` // host:port
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Folder   string `yaml:"folder"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("LoadFile: parse %s: %w", path, err)
	}
	return &f, nil
}

// ParseAccountMap parses the "alias=account-id;alias=account-id" flag
// syntax into a lookup table. An empty string yields an empty map.
func ParseAccountMap(s string) (map[string]string, error) {
	m := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return m, nil
	}
	for _, pair := range strings.Split(s, ";") {
		alias, accountID, ok := strings.Cut(pair, "=")
		alias, accountID = strings.TrimSpace(alias), strings.TrimSpace(accountID)
		if !ok || alias == "" || accountID == "" {
			return nil, fmt.Errorf("ParseAccountMap: malformed entry %q, want alias=account-id", pair)
		}
		m[alias] = accountID
	}
	return m, nil
}

// Env is the set of secrets picked up from the environment. A .env file in
// the working directory is honored when present.
type Env struct {
	AccessToken   string
	EmailPassword string
}

// LoadEnv reads the environment (plus .env, if any).
func LoadEnv() Env {
	_ = godotenv.Load()
	return Env{
		AccessToken:   os.Getenv("UBS2YNAB_ACCESS_TOKEN"),
		EmailPassword: os.Getenv("UBS2YNAB_EMAIL_PASSWORD"),
	}
}
