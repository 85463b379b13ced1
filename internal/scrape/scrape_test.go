package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const answersPage = `<html><body>
<h3 id="some-other-section">Other</h3>
<p>not the answers</p>
<h3 id="section-past-wordle-answers-alphabetical-list">Past Wordle answers</h3>
<p>ABACK | <strong>ABASE</strong> | ABATE</p>
</body></html>`

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers(strings.NewReader(answersPage))
	if err != nil {
		t.Fatalf("ParseAnswers failed: %v", err)
	}
	if answers != "ABACK | ABASE | ABATE" {
		t.Fatalf("unexpected answers text: %q", answers)
	}
}

func TestParseAnswersMissingHeader(t *testing.T) {
	page := `<html><body><p>ABACK | ABASE</p></body></html>`
	if _, err := ParseAnswers(strings.NewReader(page)); !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("expected ErrHeaderNotFound, got %v", err)
	}
}

func TestParseAnswersMissingParagraph(t *testing.T) {
	page := `<html><body><h3 id="section-past-wordle-answers-alphabetical-list">Answers</h3></body></html>`
	if _, err := ParseAnswers(strings.NewReader(page)); !errors.Is(err, ErrAnswersNotFound) {
		t.Fatalf("expected ErrAnswersNotFound, got %v", err)
	}
}

func TestFetchAnswers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(answersPage))
	}))
	defer server.Close()

	answers, err := FetchAnswers(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchAnswers failed: %v", err)
	}
	if answers != "ABACK | ABASE | ABATE" {
		t.Fatalf("unexpected answers text: %q", answers)
	}
}

func TestFetchAnswersBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := FetchAnswers(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}
