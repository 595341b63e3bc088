package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cutsync/internal/config"
	"cutsync/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyCutImported(context.Background(), "subject", "body"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceSendsReport(t *testing.T) {
	var (
		gotTitle    string
		gotPriority string
		gotTags     string
		gotBody     string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotPriority = r.Header.Get("Priority")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	subject := "Sequence Cut Summary changes on SEQ01 Cut 002"
	body := "1 New Shots\nSH050"
	if err := svc.NotifyCutImported(context.Background(), subject, body); err != nil {
		t.Fatalf("NotifyCutImported returned error: %v", err)
	}
	if gotTitle != subject {
		t.Errorf("title = %q, want %q", gotTitle, subject)
	}
	if gotPriority != "high" {
		t.Errorf("priority = %q, want high", gotPriority)
	}
	if gotTags != "cutsync,import,completed" {
		t.Errorf("tags = %q", gotTags)
	}
	if gotBody != body {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	err := svc.NotifyError(context.Background(), io.ErrUnexpectedEOF, "cut import")
	if err == nil {
		t.Fatal("expected an error for a rejected notification")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %v does not name the response status", err)
	}
}
