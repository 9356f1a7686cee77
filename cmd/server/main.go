package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rentierek/data-driven-autochess/internal/api"
	"github.com/rentierek/data-driven-autochess/internal/config"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables only")
		}
	} else {
		log.Println("loaded environment from ../.env")
	}

	log.Println("================================")
	log.Println(" AUTOCHESS BATTLE ENGINE - API SERVER")
	log.Println("================================")

	serverCfg := config.ServerFromEnv()
	port := strconv.Itoa(serverCfg.Port)

	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	store := api.NewBattleStore()
	server := api.NewServer(store)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := ":" + port
		log.Printf("battle API listening on http://localhost%s", addr)
		log.Printf("submit a battle:   POST http://localhost%s/api/battles", addr)
		log.Printf("watch live status: ws://localhost%s/ws", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	log.Println("server ready, press Ctrl+C to stop")
	<-quit

	log.Println("shutting down...")
	server.Stop()
	log.Println("goodbye")
}
