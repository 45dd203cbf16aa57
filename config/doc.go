// Package config reads host settings from HCL.
//
//	theme     = "vs-dark"
//	log_level = "debug"
//
//	loader {
//	  delay = "200ms"
//	}
//
//	model "main" {
//	  path       = "inmemory://workspace/main.go"
//	  language   = "go"
//	  value      = "package main"
//	  keep_alive = true
//	}
//
// Every setting is optional. Model paths must be unique; models sharing a
// pane would share text anyway.
package config
