package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/harrison/verifier/internal/models"
)

// LoadCredentials reads the token, owner and repository from the
// environment. Precedence (highest to lowest):
// 1. Process environment variables named in env
// 2. The dotenv file at env.EnvFile, if it exists
// 3. env.DefaultOwner / env.DefaultRepo (the token has no default)
func LoadCredentials(env EnvironmentConfig) (models.Credentials, error) {
	v := viper.New()

	if env.EnvFile != "" {
		if _, err := os.Stat(env.EnvFile); err == nil {
			v.SetConfigFile(env.EnvFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return models.Credentials{}, fmt.Errorf("reading env file %s: %w", env.EnvFile, err)
			}
		}
	}

	tokenKey, err := bindVar(v, env.TokenVar)
	if err != nil {
		return models.Credentials{}, err
	}
	ownerKey, err := bindVar(v, env.OwnerVar)
	if err != nil {
		return models.Credentials{}, err
	}
	repoKey, err := bindVar(v, env.RepoVar)
	if err != nil {
		return models.Credentials{}, err
	}

	creds := models.Credentials{
		Token: lookup(v, tokenKey),
		Owner: lookup(v, ownerKey),
		Repo:  lookup(v, repoKey),
	}
	if creds.Owner == "" {
		creds.Owner = env.DefaultOwner
	}
	if creds.Repo == "" {
		creds.Repo = env.DefaultRepo
	}
	return creds, nil
}

// bindVar binds an environment variable to the viper key a dotenv file
// would produce for it (viper lower-cases config keys).
func bindVar(v *viper.Viper, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	key := strings.ToLower(name)
	if err := v.BindEnv(key, name); err != nil {
		return "", fmt.Errorf("binding %s: %w", name, err)
	}
	return key, nil
}

func lookup(v *viper.Viper, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSpace(v.GetString(key))
}
