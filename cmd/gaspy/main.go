package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/tyemirov/gaspy/internal/cli"
	"github.com/tyemirov/gaspy/internal/services/clipboard"
	"github.com/tyemirov/gaspy/internal/utils"
)

// main is the entry point for the gaspy command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dependencies := cli.Dependencies{
		Logger:    loggerInstance,
		LogLevel:  &logLevel,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Clipboard: clipboard.NewService(),
	}
	if applicationExecutionError := cli.Execute(ctx, dependencies, os.Args[1:]); applicationExecutionError != nil {
		stop()
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
