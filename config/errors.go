package config

import "errors"

var (
	// ErrAPIKeyRequired is returned when OPENAI_API_KEY is not set.
	ErrAPIKeyRequired = errors.New("OPENAI_API_KEY is required")

	// ErrNotionTokenRequired is returned when NOTION_TOKEN is not set.
	ErrNotionTokenRequired = errors.New("NOTION_TOKEN is required")

	// ErrNotionDatabaseRequired is returned when DATABASE_ID is not set.
	ErrNotionDatabaseRequired = errors.New("DATABASE_ID is required")
)
