// Package config loads crispy's configuration file.
//
// Configuration lives in crispy.json, crispy.yaml or crispy.yml:
//
//	{
//	  "position": "top-right",
//	  "duration": 5000,
//	  "server": {"host": "localhost", "port": 4000},
//	  "metrics": {"enabled": true, "namespace": "crispy", "path": "/metrics"},
//	  "tracing": {"enabled": true, "serviceName": "crispy"}
//	}
//
// Durations are in milliseconds. Missing values take their defaults;
// invalid values are reported as coded errors from internal/errors.
package config
