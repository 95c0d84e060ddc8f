// Package config provides configuration parsing for vtree projects.
//
// The configuration is stored in vtree.json, vtree.yaml or vtree.yml in the
// project directory. This package handles loading, saving, defaults and
// validation. A directory without a configuration file yields the defaults.
//
// # Configuration File Structure
//
//	{
//	  "demo": {
//	    "interval": "500ms",
//	    "maxCounter": 10
//	  },
//	  "engine": {
//	    "strictTags": false,
//	    "children": "positional"
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "snapshot": {
//	    "driver": "bolt",
//	    "path": ".vtree/snapshots.db"
//	  },
//	  "metrics": {
//	    "namespace": "vtree"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// The same keys are accepted in YAML.
package config
