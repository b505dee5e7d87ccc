// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokens estimates how many language-model tokens a document costs.
package tokens

import (
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the tiktoken encoding used for estimates.
const Encoding = "cl100k_base"

// cacheEnv is the variable tiktoken-go reads for its BPE file cache.
const cacheEnv = "TIKTOKEN_CACHE_DIR"

// LoadTimeout bounds how long an estimate waits for the encoding. The first
// load may download the BPE file; estimates made before it finishes use the
// rune approximation.
var LoadTimeout = 5 * time.Second

// loadEncoding is replaced in tests so no encoding data is fetched.
var loadEncoding = func() (*tiktoken.Tiktoken, error) {
	useCacheDir()
	return tiktoken.GetEncoding(Encoding)
}

// loader loads the encoding once in the background.
type loader struct {
	once sync.Once
	done chan struct{}
	enc  *tiktoken.Tiktoken
}

func newLoader() *loader {
	return &loader{done: make(chan struct{})}
}

var current = newLoader()

// encoder returns the loaded encoding, or nil when it failed to load or
// did not load within LoadTimeout.
func (l *loader) encoder() *tiktoken.Tiktoken {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			if enc, err := loadEncoding(); err == nil {
				l.enc = enc
			}
		}()
	})

	timer := time.NewTimer(LoadTimeout)
	defer timer.Stop()
	select {
	case <-l.done:
		return l.enc
	case <-timer.C:
		return nil
	}
}

// Estimate returns the token count of text. When the encoding is not
// available it falls back to one token per four runes.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	enc := current.encoder()
	if enc == nil {
		return approximate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func approximate(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// useCacheDir points tiktoken-go at a persistent cache under the user cache
// directory so the BPE file is downloaded at most once.
func useCacheDir() {
	if os.Getenv(cacheEnv) != "" {
		return
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return
	}
	dir := filepath.Join(base, "arxiv-reader", "tiktoken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	os.Setenv(cacheEnv, dir)
}
