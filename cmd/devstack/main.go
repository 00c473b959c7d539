package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ruthvic2255/cycle-companion/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var withAuthz bool
	flag.BoolVar(&withAuthz, "authz", true, "also start the Authorizer")
	flag.Parse()

	usage := `
Run the cycle-companion development stack (PostgreSQL and Authorizer) with the
environment variables from the .env file.

Usage:

devstack [-h] [-authz=false] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devstack -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := testutil.DockerAvailable(pingCtx)
	cancel()
	if err != nil {
		log.Fatalf("Docker is required: %v\n", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	stack, err := testutil.StartDatabase(ctx, testutil.StackConfigFromEnv(), log.Printf)
	if err != nil {
		log.Fatalf("Failed to start database: %v\n", err)
	}
	if withAuthz {
		if err := stack.StartAuthorizer(ctx); err != nil {
			stack.Terminate(ctx)
			log.Fatalf("Failed to start Authorizer: %v\n", err)
		}
	}
	log.Printf("Stack is up, press Ctrl+C to stop\n")

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating containers...\n", sig)
	stack.Terminate(ctx)
}
