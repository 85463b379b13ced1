// Package wordfreq extracts the English five-letter corpus from the
// wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

// WordLength is the fixed corpus word length.
const WordLength = 5

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type wordEntry struct {
	word  string
	score float64
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []struct {
		URL         string `json:"url"`
		Filename    string `json:"filename"`
		Packagetype string `json:"packagetype"`
	} `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir,
// reusing an already-downloaded copy when present.
func DownloadLatestWheel(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := httpRequest(ctx, pypiEndpoint)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Wheel{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}

	url, filename := pickWheelURL(payload)
	if url == "" || filename == "" {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	destPath := filepath.Join(cacheDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	tmpFile, err := os.CreateTemp(cacheDir, "wordfreq-*.whl")
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	wheelResp, err := httpRequest(ctx, url)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = wheelResp.Body.Close()
	}()
	if wheelResp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected wheel status: %s", wheelResp.Status)
	}

	if _, err := io.Copy(tmpFile, wheelResp.Body); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Wheel{}, fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Wheel{}, fmt.Errorf("failed to move wheel into cache: %w", err)
	}

	return Wheel{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: false}, nil
}

// ExtractFiveLetterWords returns the English five-letter words in the
// wheel, most frequent first, deduplicated and restricted to ASCII
// letters. A limit <= 0 means no limit.
func ExtractFiveLetterWords(wheelPath string, limit int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}

	entries, err := readEnglishEntries(wheelPath)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	words := make([]string, 0, len(entries))
	seen := make(map[string]struct{})
	for _, entry := range entries {
		word := strings.ToLower(entry.word)
		if _, ok := seen[word]; ok {
			continue
		}
		if !isFiveASCIILetters(word) {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
		if limit > 0 && len(words) >= limit {
			break
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no five-letter words found in wheel")
	}
	return words, nil
}

func isFiveASCIILetters(word string) bool {
	if len(word) != WordLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func pickWheelURL(payload pypiResponse) (string, string) {
	for _, u := range payload.URLs {
		if u.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(u.Filename, "py3-none-any.whl") {
			return u.URL, u.Filename
		}
	}
	for _, u := range payload.URLs {
		if u.Packagetype == "bdist_wheel" {
			return u.URL, u.Filename
		}
	}
	return "", ""
}

func readEnglishEntries(wheelPath string) ([]wordEntry, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile := selectEnglishDataFile(reader.File)
	if dataFile == nil {
		return nil, fmt.Errorf("no english word list found in wheel")
	}

	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	decoded, err := decodeWordEntries(dataFile.Name, rc)
	if err != nil {
		return nil, err
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return decoded, nil
}

// selectEnglishDataFile picks the English msgpack list, preferring the
// large variant over the small one.
func selectEnglishDataFile(files []*zip.File) *zip.File {
	var small *zip.File
	for _, file := range files {
		name := strings.ToLower(file.Name)
		if !strings.HasPrefix(name, "wordfreq/data/") {
			continue
		}
		if !strings.Contains(name, ".msgpack") {
			continue
		}
		base := strings.TrimPrefix(name, "wordfreq/data/")
		switch {
		case strings.HasPrefix(base, "large_en."):
			return file
		case strings.HasPrefix(base, "small_en."):
			small = file
		}
	}
	return small
}

func decodeWordEntries(name string, r io.Reader) ([]wordEntry, error) {
	reader := r
	if strings.HasSuffix(name, ".gz") {
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gzReader.Close()
		}()
		reader = gzReader
	}

	payload, err := decodeMsgpack(reader)
	if err != nil {
		return nil, err
	}
	return entriesFromData(payload)
}

func entriesFromData(data interface{}) ([]wordEntry, error) {
	switch v := data.(type) {
	case []interface{}:
		return entriesFromSlice(v)
	case map[interface{}]interface{}:
		return entriesFromMap(v)
	case map[string]interface{}:
		return entriesFromStringMap(v)
	default:
		return nil, fmt.Errorf("unsupported msgpack root type %T", data)
	}
}

// entriesFromSlice handles the bucketed wordfreq layout: element i is
// the list of words in frequency bucket i, highest bucket first.
func entriesFromSlice(items []interface{}) ([]wordEntry, error) {
	var entries []wordEntry
	for i, item := range items {
		if pair, ok := entriesFromScoredPair(item); ok {
			entries = append(entries, pair...)
			continue
		}
		if words, ok := toStringSlice(item); ok {
			score := float64(len(items) - i)
			for _, word := range words {
				entries = append(entries, wordEntry{word: word, score: score})
			}
			continue
		}
		return nil, fmt.Errorf("unsupported msgpack slice entry %T", item)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no word entries parsed from slice")
	}
	return entries, nil
}

func entriesFromScoredPair(item interface{}) ([]wordEntry, bool) {
	pair, ok := item.([]interface{})
	if !ok || len(pair) != 2 {
		return nil, false
	}
	score, ok := toFloat64(pair[0])
	if !ok {
		return nil, false
	}
	words, ok := toStringSlice(pair[1])
	if !ok {
		return nil, false
	}
	entries := make([]wordEntry, 0, len(words))
	for _, word := range words {
		entries = append(entries, wordEntry{word: word, score: score})
	}
	return entries, true
}

func entriesFromMap(items map[interface{}]interface{}) ([]wordEntry, error) {
	entries := make([]wordEntry, 0, len(items))
	for key, value := range items {
		word, okWord := toString(key)
		score, okScore := toFloat64(value)
		if okWord && okScore {
			entries = append(entries, wordEntry{word: word, score: score})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no word entries parsed from map")
	}
	return entries, nil
}

func entriesFromStringMap(items map[string]interface{}) ([]wordEntry, error) {
	entries := make([]wordEntry, 0, len(items))
	for key, value := range items {
		score, okScore := toFloat64(value)
		if okScore {
			entries = append(entries, wordEntry{word: key, score: score})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no word entries parsed from map")
	}
	return entries, nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case float32:
		return float64(num), true
	case int64:
		return float64(num), true
	case uint64:
		return float64(num), true
	case string:
		if num == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func toString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		if utf8.Valid(val) {
			return string(val), true
		}
		return "", false
	default:
		return "", false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			str, ok := toString(item)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
