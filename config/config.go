package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Env is a snapshot of the process environment for the few server knobs
// that are read directly rather than through Settings.
type Env map[string]string

func Environ() Env {
	environ := os.Environ()
	env := make(Env, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if key != "" {
			env[key] = value
		}
	}
	return env
}

func (e Env) String(key, defaultValue string) string {
	if val, ok := e[key]; ok {
		return val
	}
	return defaultValue
}

func (e Env) Int(key string, defaultValue int) int {
	asInt, err := strconv.Atoi(strings.TrimSpace(e[key]))
	if err != nil {
		return defaultValue
	}
	return asInt
}

// Bool accepts anything strconv.ParseBool does; other values mean the default.
func (e Env) Bool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(e[key]))
	if err != nil {
		return defaultValue
	}
	return b
}

// Seconds reads a whole number of seconds.
func (e Env) Seconds(key string, defaultValue time.Duration) time.Duration {
	n := e.Int(key, -1)
	if n < 0 {
		return defaultValue
	}
	return time.Duration(n) * time.Second
}
