package instance

import (
	"os"
	"strings"

	"github.com/streetsneakers/sneakers-backend/pkg/env"
)

const fallbackID = "sneakers-0"

// GetID identifies this process in logs: STREETSNEAKERS_INSTANCE_ID, then the hostname.
func GetID() string {
	if id := strings.TrimSpace(env.Get("STREETSNEAKERS_INSTANCE_ID", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
