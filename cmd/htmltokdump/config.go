package main

import "gopkg.in/ini.v1"

// config holds the subset of htmltokdump's settings that come from a file
// rather than flags, loaded with gopkg.in/ini.v1 the way
// ltick/taomin's go-ini packages load their section-based config.
type config struct {
	MetricsAddr    string
	ForeignContent bool
}

func defaultConfig() config {
	return config{MetricsAddr: "", ForeignContent: false}
}

// loadConfig reads an INI file of the shape:
//
//	[server]
//	metrics_addr = :9090
//
//	[tokenizer]
//	foreign_content = false
//
// Missing keys keep their default value; a missing file is not an error since
// every setting is also reachable via flags.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return cfg, err
	}

	cfg.MetricsAddr = f.Section("server").Key("metrics_addr").MustString(cfg.MetricsAddr)
	cfg.ForeignContent = f.Section("tokenizer").Key("foreign_content").MustBool(cfg.ForeignContent)
	return cfg, nil
}
