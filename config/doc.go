// Package config loads runtime settings from the environment, with optional
// .env file support.
package config
