// Package config loads tmplgen configuration files.
//
// A config file lists the packages and types to generate template field
// providers for. It is written in YAML or in JSONC (JSON with comments and
// trailing commas); the format is chosen by file extension.
//
//	version: "1"
//	tag: tmpl
//	comments: true
//	targets:
//	  - package: ./examples/greeting
//	    types: [Greeting, Invoice]
//	    output: ""   # default: the package directory
//
// Relative package patterns are loaded from, and relative output
// directories joined to, the directory holding the config file.
package config
