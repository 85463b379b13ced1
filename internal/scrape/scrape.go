// Package scrape fetches the past Wordle answers from the web.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultAnswersURL is the page listing every past Wordle answer.
const DefaultAnswersURL = "https://www.techradar.com/news/past-wordle-answers"

const answersHeaderID = "section-past-wordle-answers-alphabetical-list"

var (
	// ErrHeaderNotFound is returned when the answers section header is missing.
	ErrHeaderNotFound = errors.New("answers section header not found")
	// ErrAnswersNotFound is returned when no paragraph follows the header.
	ErrAnswersNotFound = errors.New("no answers paragraph after section header")
)

// FetchAnswers downloads the answers page and returns the raw
// pipe-delimited answers text.
func FetchAnswers(ctx context.Context, url string) (string, error) {
	if url == "" {
		url = DefaultAnswersURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected answers page status: %s", resp.Status)
	}
	return ParseAnswers(resp.Body)
}

// ParseAnswers extracts the text of the first <p> following the
// alphabetical-list <h3> header in document order.
func ParseAnswers(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse answers page: %w", err)
	}

	headerSeen := false
	var answers string

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h3" && attrValue(n, "id") == answersHeaderID:
				headerSeen = true
			case n.Data == "p" && headerSeen:
				answers = strings.TrimSpace(nodeText(n))
				return true
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if walk(child) {
				return true
			}
		}
		return false
	}
	found := walk(root)

	if !headerSeen {
		return "", ErrHeaderNotFound
	}
	if !found || answers == "" {
		return "", ErrAnswersNotFound
	}
	return answers, nil
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}
