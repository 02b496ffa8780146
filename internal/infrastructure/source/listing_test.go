package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/domain"
)

func interviewServer(t *testing.T) (*httptest.Server, *http.ServeMux) {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/report/interview/daijin.html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body>
<ul>
  <li><a href="daijin251119.html">大臣会見（11月19日）</a></li>
  <li><a href="/report/interview/daijin251118.html">大臣会見（11月18日）</a></li>
  <li><a href="daijin.html">一覧へ戻る</a></li>
  <li><a href="/press/other.html">別のページ</a></li>
</ul>
</body></html>`)
	})
	mux.HandleFunc("/report/interview/daijin251119.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><h1>大臣会見概要</h1><p>2025年11月19日（水）</p><p>会見の本文です。</p></body></html>`)
	})
	mux.HandleFunc("/report/interview/daijin251118.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><h1>大臣会見概要</h1><p>2025年11月18日（火）</p><p>前日の本文です。</p></body></html>`)
	})

	return server, mux
}

func TestInterviewSourceFetch(t *testing.T) {
	t.Parallel()

	server, _ := interviewServer(t)

	cfg := config.SourceConfig{InterviewURL: server.URL + "/report/interview/daijin.html", InterviewLimit: 5}
	src := NewInterviewSource(cfg, server.Client(), discardLogger())

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 interview records, got %d: %+v", len(records), records)
	}

	first := records[0]
	if first.Source != domain.SourceInterview {
		t.Fatalf("unexpected source: %s", first.Source)
	}
	if first.URL != server.URL+"/report/interview/daijin251119.html" {
		t.Fatalf("expected resolved absolute url, got %s", first.URL)
	}
	if first.Title != "大臣会見（11月19日）" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.DateText != "2025年11月19日" {
		t.Fatalf("expected extracted date text, got %q", first.DateText)
	}
	if !strings.Contains(first.Body, "会見の本文です。") {
		t.Fatalf("expected transcript text in body")
	}

	if records[1].DateText != "2025年11月18日" {
		t.Fatalf("expected second record date, got %q", records[1].DateText)
	}
}

func TestInterviewSourceLimit(t *testing.T) {
	t.Parallel()

	server, _ := interviewServer(t)

	cfg := config.SourceConfig{InterviewURL: server.URL + "/report/interview/daijin.html", InterviewLimit: 1}
	src := NewInterviewSource(cfg, server.Client(), discardLogger())

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record with limit=1, got %d", len(records))
	}
}

func TestInterviewSourceListingError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.SourceConfig{InterviewURL: server.URL + "/report/interview/daijin.html"}
	src := NewInterviewSource(cfg, server.Client(), discardLogger())

	_, err := src.Fetch(context.Background())
	var fErr *domain.FetchError
	if !errors.As(err, &fErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestInterviewSourceSkipsBrokenDetail(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/report/interview/daijin.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
<a href="daijin251119.html">今日の会見</a>
<a href="daijin251199.html">壊れたリンク</a>
</body></html>`)
	})
	mux.HandleFunc("/report/interview/daijin251119.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><p>2025年11月19日</p><p>本文</p></body></html>`)
	})

	cfg := config.SourceConfig{InterviewURL: server.URL + "/report/interview/daijin.html"}
	src := NewInterviewSource(cfg, server.Client(), discardLogger())

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected broken detail skipped, got %d records", len(records))
	}
}
