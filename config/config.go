package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Simulation defaults. Every value is overridable through the environment at
// startup; none can change at runtime.
const (
	// DefaultTickHz is the world advance frequency (20 ticks per second).
	DefaultTickHz = 20
	// DefaultMoveSpeed is the player movement speed in world units per second.
	DefaultMoveSpeed = 6.0
	// DefaultHalfExtent bounds player X and Z to [-HalfExtent, HalfExtent].
	DefaultHalfExtent = 90.0
	// DefaultInputQueueCap caps each player's pending input queue between
	// ticks. When the cap is hit the oldest pending command is discarded.
	DefaultInputQueueCap = 256
	// DefaultSendBuffer is the per-client outbound message buffer size.
	DefaultSendBuffer = 256
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	Addr          string
	TickHz        int
	MoveSpeed     float64
	HalfExtent    float64
	InputQueueCap int
	SendBuffer    int
	StaticDir     string
	LogFile       string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// Load reads configuration from the environment, consulting an optional
// .env file first. Unset or unparsable values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:          getEnv("ARENA_ADDR", ":8080"),
		TickHz:        parseInt(getEnv("ARENA_TICK_HZ", ""), DefaultTickHz),
		MoveSpeed:     parseFloat(getEnv("ARENA_MOVE_SPEED", ""), DefaultMoveSpeed),
		HalfExtent:    parseFloat(getEnv("ARENA_HALF_EXTENT", ""), DefaultHalfExtent),
		InputQueueCap: parseInt(getEnv("ARENA_INPUT_QUEUE_CAP", ""), DefaultInputQueueCap),
		SendBuffer:    parseInt(getEnv("ARENA_SEND_BUFFER", ""), DefaultSendBuffer),
		StaticDir:     getEnv("STATIC_DIR", ""),
		LogFile:       getEnv("ARENA_LOG_FILE", "arena.log"),
		ReadTimeout:   parseDuration(getEnv("ARENA_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:  parseDuration(getEnv("ARENA_WRITE_TIMEOUT", "15s"), 15*time.Second),
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = DefaultTickHz
	}
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = DefaultMoveSpeed
	}
	if cfg.HalfExtent <= 0 {
		cfg.HalfExtent = DefaultHalfExtent
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultSendBuffer
	}
	return cfg
}

// TickInterval is the wall-clock period between scheduler firings.
func (c Config) TickInterval() time.Duration {
	return time.Duration(int64(time.Second) / int64(c.TickHz))
}

// Dt is the fixed simulation delta time in seconds.
func (c Config) Dt() float64 {
	return 1.0 / float64(c.TickHz)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
