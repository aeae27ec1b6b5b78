package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"lbo_model/pkg/api/lbo"
	"lbo_model/pkg/core/projection"
)

// ServerConfig is loaded from config/server.yaml; PORT env wins over the file.
type ServerConfig struct {
	Port  string `yaml:"port"`
	Trace bool   `yaml:"trace"`
}

func loadConfig() ServerConfig {
	cfg := ServerConfig{Port: "8080"}

	data, err := os.ReadFile("config/server.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/server.yaml: %v\n", err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Model endpoints
	if cfg.Trace {
		lbo.InitHandler(projection.WriterSink{W: os.Stdout})
	}
	http.HandleFunc("/api/lbo/run", lbo.HandleRun)

	fmt.Printf("API server starting on :%s...\n", cfg.Port)
	fmt.Println("  - POST /api/lbo/run  (assumptions JSON -> schedule + IRR summary)")

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
