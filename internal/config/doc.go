// Package config loads vtree.json, the configuration shared by the vtree
// commands.
//
// # Configuration File Structure
//
//	{
//	  "listen": ":7070",
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "namespace": "vtree"
//	  },
//	  "oplog": {
//	    "capacity": 1024,
//	    "buffer": 256
//	  },
//	  "snapshot": {
//	    "backend": "s3",
//	    "s3": {
//	      "bucket": "vtree-snapshots",
//	      "prefix": "demo/",
//	      "region": "us-east-1",
//	      "endpoint": "http://localhost:9000",
//	      "pathStyle": true
//	    }
//	  },
//	  "tick": "1s"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := slog.New(cfg.Log.Handler(os.Stderr))
package config
