package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Content generator service
	GeneratorBaseURL string
	GeneratorAPIKey  string
	QuestionCount    int

	// Default evaluation countdown; 0 disables the timer
	TimeLimitSec int

	AuthSecret      string
	LearnerUser     string
	LearnerPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,
		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		GeneratorBaseURL: envOr("GENERATOR_BASE_URL", "http://localhost:9090"),
		GeneratorAPIKey:  os.Getenv("GENERATOR_API_KEY"),
		QuestionCount:    envInt("QUESTION_COUNT", 5),

		TimeLimitSec: envInt("TIME_LIMIT_SEC", 0),

		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		LearnerUser:     envOr("LEARNER_USER", "estudiante"),
		LearnerPassHash: envOr("LEARNER_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"), // dev only, replace in prod

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://app.estudia.cl"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
