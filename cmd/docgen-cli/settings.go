package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-docgen/pkg/pipeline"
)

// settings is the flattened configuration the command runs with.
type settings struct {
	Template string
	Output   string
	DataFile string
	Backend  string
	Format   string
	Language string
	Manifest string
	Messages string
	TempRoot string
	KeepTemp bool
	Timeout  time.Duration
	Verbose  bool
}

// resolveSettings layers explicitly passed flags over DOCGEN_* environment
// variables, the config file, and built-in defaults. A .env file in the
// working directory is loaded first so it can feed the environment layer.
func resolveSettings(configFile string) (*settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", pipeline.DefaultBackendName)
	v.SetDefault("format", "pdf")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("docgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "template", "output", "data", "backend", "format", "lang",
			"manifest", "messages", "temp-root", "keep-temp", "timeout", "verbose":
			v.Set(f.Name, f.Value.String())
		}
	})

	return &settings{
		Template: v.GetString("template"),
		Output:   v.GetString("output"),
		DataFile: v.GetString("data"),
		Backend:  v.GetString("backend"),
		Format:   v.GetString("format"),
		Language: v.GetString("lang"),
		Manifest: v.GetString("manifest"),
		Messages: v.GetString("messages"),
		TempRoot: v.GetString("temp-root"),
		KeepTemp: v.GetBool("keep-temp"),
		Timeout:  v.GetDuration("timeout"),
		Verbose:  v.GetBool("verbose"),
	}, nil
}
