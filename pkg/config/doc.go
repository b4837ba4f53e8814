// Package config loads env-tagged configuration structs.
//
// It wraps github.com/caarlos0/env/v11 for parsing and github.com/joho/godotenv
// for optional .env files. Every infrastructure package of the dispatcher
// exposes its own Config struct with env tags; the composition root loads
// them one by one:
//
//	var dispatchCfg dispatch.Config
//	var redisCfg redis.Config
//	config.MustLoad(&dispatchCfg)
//	config.MustLoad(&redisCfg)
//
// Errors are joined with ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer
// and can be matched with errors.Is.
package config
