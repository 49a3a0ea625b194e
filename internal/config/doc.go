// Package config provides configuration parsing for zx projects.
//
// The configuration is stored in zx.json at the project root. Every field
// is optional; a project without zx.json builds with the defaults.
//
// # Configuration File Structure
//
//	{
//	  "src": ["views", "components"],
//	  "build": {
//	    "output": "",
//	    "sourceMaps": true,
//	    "goimports": true,
//	    "indent": 4,
//	    "workers": 8,
//	    "publish": {
//	      "bucket": "my-sourcemaps",
//	      "prefix": "web/",
//	      "region": "eu-west-1"
//	    }
//	  },
//	  "metrics": {
//	    "enabled": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromDir(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Sources:", cfg.SourceDirs())
package config
