package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		APIBaseURL   string
		DataDir      string
		RollbarToken string
		// RequestTimeout of 0 leaves the transport default (no timeout).
		RequestTimeout time.Duration
		Sandbox        SandboxConfig
	}

	SandboxConfig struct {
		Addr            string
		SecretKey       string
		SessionTTL      time.Duration
		ShutdownTimeout time.Duration
		UploadLimit     string // e.g. "16M"
	}
)

// StatePath is the bbolt file holding the session, the navigation summary and the cookies.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "develop")
	conf.SetDefault("appName", "GradeDesk")
	conf.SetDefault("apiBaseURL", "http://localhost:5000/api")
	conf.SetDefault("dataDir", defaultDataDir())
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("requestTimeout", time.Duration(0))
	conf.SetDefault("sandbox.addr", ":5000")
	conf.SetDefault("sandbox.secretKey", "b7x$k2=q(9m!dz&uoxh2(h!x)#*c2(#yg4h^$ceg-sandbox")
	conf.SetDefault("sandbox.sessionTTL", 7*24*time.Hour)
	conf.SetDefault("sandbox.shutdownTimeout", 5*time.Second)
	conf.SetDefault("sandbox.uploadLimit", "16M")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:            env,
		Build:          conf.GetString("build"),
		Debug:          conf.GetBool("debug"),
		TestMode:       conf.GetBool("testMode"),
		AppName:        conf.GetString("appName"),
		APIBaseURL:     strings.TrimRight(conf.GetString("apiBaseURL"), "/"),
		DataDir:        conf.GetString("dataDir"),
		RollbarToken:   conf.GetString("rollbarToken"),
		RequestTimeout: conf.GetDuration("requestTimeout"),
		Sandbox: SandboxConfig{
			Addr:            conf.GetString("sandbox.addr"),
			SecretKey:       conf.GetString("sandbox.secretKey"),
			SessionTTL:      conf.GetDuration("sandbox.sessionTTL"),
			ShutdownTimeout: conf.GetDuration("sandbox.shutdownTimeout"),
			UploadLimit:     conf.GetString("sandbox.uploadLimit"),
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gradedesk"
	}
	return filepath.Join(home, ".gradedesk")
}
