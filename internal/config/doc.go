// Package config provides configuration parsing for vtree tools.
//
// The configuration lives in vtree.json, vtree.yaml (or .yml) or vtree.toml
// at the project root. This package handles loading, saving, and validating
// it, and turns it into engine options and a logger.
//
// # Configuration File Structure
//
//	{
//	  "engine": {
//	    "maxRerenders": 10,
//	    "disposeOnUnmount": true,
//	    "hookMismatch": "warn"
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "preview": {"host": "localhost", "port": 7070, "app": "counter"},
//	  "snapshot": {"target": "s3://bucket/previews", "region": "eu-west-1"},
//	  "metrics": {"enabled": true, "namespace": "vtree"}
//	}
//
// The TOML form uses snake_case keys (max_rerenders, hook_mismatch, ...).
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng := engine.New(dom.NewHTML(), cfg.EngineOptions()...)
package config
