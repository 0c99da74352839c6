package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const sessionFileName = ".weatherdeck_session"

// APIURL returns the base URL for the WeatherDeck API.
// It can be overridden with the WEATHERDECK_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("WEATHERDECK_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Session is the locally stored login state: the bearer token and the id of
// the account it belongs to.
type Session struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
}

// SaveSession writes the session file with owner-only permissions.
func SaveSession(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(sessionPath(), data, 0600)
}

// LoadSession reads the stored session. A missing file is an error; callers
// treat it as "not logged in".
func LoadSession() (Session, error) {
	var s Session
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(data, &s)
	return s, err
}

// ClearSession removes the session file. Clearing an absent session is a no-op.
func ClearSession() error {
	err := os.Remove(sessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func sessionPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, sessionFileName)
}
