package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gamectrl/storefront/app/cmd"
	"github.com/gamectrl/storefront/app/configs"
	"github.com/gamectrl/storefront/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys not configured: %v (run `storefront generate-keys`)", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db, env, sessionKeys)

	addr := env.Port
	if addr == "" {
		addr = ":8000"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}

}
