package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,required=true"`
	Host             string        `env:"HOST,default=localhost"`
	Port             int           `env:"PORT,default=8080"`
	DebugPort        int           `env:"DEBUG_PORT,default=8081"`
	StoreTimeout     time.Duration `env:"STORE_TIMEOUT,default=5s"`
	DefaultPageSize  int           `env:"DEFAULT_PAGE_SIZE,default=50"`
	MaxPageSize      int           `env:"MAX_PAGE_SIZE,default=200"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=2000"`
	CensoredWords    string        `env:"CENSORED_WORDS"`
	CharReplacement  string        `env:"CHARACTER_REPLACEMENT,default=*"`
	JWTSecret        string        `env:"JWT_SECRET,required=true"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	RedisURL         string        `env:"REDIS_URL"`
	LockTTL          time.Duration `env:"LOCK_TTL,default=10s"`
	LockRetry        time.Duration `env:"LOCK_RETRY,default=25ms"`
	EventBufferSize  int           `env:"EVENT_BUFFER_SIZE,default=1024"`
}

// Words splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) Words() []string {
	var words []string
	for _, word := range strings.Split(c.CensoredWords, ",") {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, word)
		}
	}
	return words
}

func (c Config) Validate() error {
	if c.DefaultPageSize < 1 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("page sizes must satisfy 1 <= DEFAULT_PAGE_SIZE (%d) <= MAX_PAGE_SIZE (%d)",
			c.DefaultPageSize, c.MaxPageSize)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	}
	if c.EventBufferSize < 1 {
		return fmt.Errorf("EVENT_BUFFER_SIZE must be positive, got %d", c.EventBufferSize)
	}
	return nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
