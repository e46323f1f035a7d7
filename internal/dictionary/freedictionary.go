package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/myvoca/internal/config"
)

const (
	freeDictionaryName = "freedictionary"
	userAgent          = "MyVoca/1.0"
)

// FreeDictionaryClient implements Client using the Free Dictionary API.
// API docs: https://dictionaryapi.dev/
type FreeDictionaryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

// rateLimiter spaces calls at least interval apart across goroutines.
type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if delay := r.interval - time.Since(r.lastCall); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	r.lastCall = time.Now()
	return nil
}

func NewFreeDictionaryClient(cfg config.Dictionary) *FreeDictionaryClient {
	return &FreeDictionaryClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: &rateLimiter{interval: cfg.MinInterval},
	}
}

func (c *FreeDictionaryClient) Name() string {
	return freeDictionaryName
}

// Lookup fetches the definitions of an expression. Lookups are case-insensitive.
func (c *FreeDictionaryClient) Lookup(ctx context.Context, expression string) (*LookupResult, error) {
	term := strings.ToLower(strings.TrimSpace(expression))
	if term == "" {
		return nil, fmt.Errorf("empty expression")
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(term), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch definition: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, term)
	default:
		return nil, fmt.Errorf("unexpected status from %s: %d", freeDictionaryName, resp.StatusCode)
	}

	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, term)
	}

	return toLookupResult(expression, entries), nil
}

// toLookupResult flattens every entry and meaning, dropping repeated texts.
func toLookupResult(expression string, entries []freeDictionaryEntry) *LookupResult {
	result := &LookupResult{Expression: expression}
	seen := make(map[string]bool)

	for _, entry := range entries {
		if result.Pronunciation == "" {
			result.Pronunciation = entry.Phonetic
		}
		for _, p := range entry.Phonetics {
			if result.Pronunciation == "" && p.Text != "" {
				result.Pronunciation = p.Text
			}
		}
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				text := strings.TrimSpace(def.Definition)
				if text == "" || seen[text] {
					continue
				}
				seen[text] = true
				result.Definitions = append(result.Definitions, Definition{
					PartOfSpeech: meaning.PartOfSpeech,
					Text:         text,
					Example:      def.Example,
				})
			}
		}
	}
	return result
}

type freeDictionaryEntry struct {
	Word      string             `json:"word"`
	Phonetic  string             `json:"phonetic"`
	Phonetics []freeDictPhonetic `json:"phonetics"`
	Meanings  []freeDictMeaning  `json:"meanings"`
}

type freeDictPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type freeDictMeaning struct {
	PartOfSpeech string               `json:"partOfSpeech"`
	Definitions  []freeDictDefinition `json:"definitions"`
}

type freeDictDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}
