// Package file provides the TOML-backed config store.
//
// Settings live in config.toml inside the Surmado directory (~/.surmado by
// default). The file is written with 0600 permissions since it may hold
// the API key.
package file
