// Package config loads viewkit settings from the environment.
//
// Values are read with github.com/caarlos0/env/v11 after an optional .env
// file has been applied with github.com/joho/godotenv. Load caches each
// configuration type so repeated calls are cheap; Parse always reads the
// environment again.
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	locales, err := cfg.Locales()
package config
