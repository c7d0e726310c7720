package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	Port         string
	AppAuthKey   string
	AppEncKey    string
	AllowedHosts []string
	CSRFKey      string
	AppEnv       string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	allowedHosts := []string{"localhost", "127.0.0.1"}
	if raw := os.Getenv("ALLOWED_HOSTS"); raw != "" {
		allowedHosts = strings.Split(raw, ",")
		for i := range allowedHosts {
			allowedHosts[i] = strings.TrimSpace(allowedHosts[i])
		}
	}

	return ENV{
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       os.Getenv("DB_PORT"),
		Port:         os.Getenv("APP_PORT"),
		AppAuthKey:   os.Getenv("APP_AUTH_KEY"),
		AppEncKey:    os.Getenv("APP_ENC_KEY"),
		AllowedHosts: allowedHosts,
		CSRFKey:      os.Getenv("CSRF_KEY"),
		AppEnv:       os.Getenv("APP_ENV"),
	}

}

var LoadENV = LoadEnv()
