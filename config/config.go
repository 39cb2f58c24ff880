// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime
func init() {
	loadFirstApplicationConfigFile()
	dotEnvPath := `.env`
	for range maxDotEnvDepth {
		if err := godotenv.Load(dotEnvPath); err == nil {
			break
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

func MustLoadFromKey(key string, cfg any) {
	if err := viper.UnmarshalKey(key, cfg); err != nil {
		log.Panic(errors.Wrapf(err, "failed to load config by key %q", key))
	}
}

// Env looks up `<APPLICATION_YAML_KEY>_<NAME>` first and falls back to `<NAME>`.
func Env(applicationYAMLKey, name string) string {
	name = strings.ToUpper(name)
	if applicationYAMLKey != "" {
		if val := os.Getenv(envPrefix(applicationYAMLKey) + "_" + name); val != "" {
			return val
		}
	}

	return os.Getenv(name)
}

func envPrefix(applicationYAMLKey string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", "/", "_", ".", "_").Replace(applicationYAMLKey))
}

func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(err)
		}
	}

	log.Panic(errors.New("could not find any application.yaml files"))
}

func findAllApplicationConfigFiles() []string {
	var files, hints []string
	if p, err := os.Getwd(); err == nil {
		hints = append(hints, filepath.Join(p, ".testdata"), p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, path.Dir(filepath.Join(p, "..")))
	}
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)
	hints = append(hints, filepath.Join(filepath.Dir(callerFile), ".."))

	for _, dir := range hints {
		pattern := filepath.Join(dir, applicationConfigFileName)
		if f, err := filepath.Glob(pattern); err != nil {
			log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))
		} else {
			files = append(files, f...)
		}
	}

	return files
}
