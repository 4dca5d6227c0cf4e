// Package config loads the pagination cost model and engine settings from a
// YAML file and REPORTPAGER_* environment variables.
//
// A file may name a preset and a page, then override individual values:
//
//	preset: compact
//	page:
//	  size: a4
//	  margin: 40
//	media_height: 64
//	text_mode: visible
//	engine:
//	  cache_size: 512
//	  concurrency: 8
//
// Environment variables take precedence over the file. Call [EnvHelp] for
// the full list.
package config
