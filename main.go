package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	ledgercmd "github.com/fenixlife1978/El-Valle-sub001/cmd/ledger"
	reconcilecmd "github.com/fenixlife1978/El-Valle-sub001/cmd/reconcile"
	"github.com/fenixlife1978/El-Valle-sub001/cmd/root"
	statementcmd "github.com/fenixlife1978/El-Valle-sub001/cmd/statement"
)

func init() {
	// Load environment and log level before anything logs.
	loadEnvSilently()
	configureLogLevel()

	root.Init()
	root.Cmd.AddCommand(ledgercmd.Cmd)
	root.Cmd.AddCommand(statementcmd.Cmd)
	root.Cmd.AddCommand(reconcilecmd.Cmd)
}

// loadEnvSilently loads .env without logging; logging is not configured yet.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
