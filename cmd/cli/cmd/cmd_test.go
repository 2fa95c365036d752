package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clouddevops/devopsapp/internal/compute"
	"github.com/clouddevops/devopsapp/internal/config"
	"github.com/clouddevops/devopsapp/internal/stopper"
	"github.com/clouddevops/devopsapp/pkg/types"
)

type recordingStopper struct {
	ids []string
}

func (r *recordingStopper) StopInstance(_ context.Context, id string) error {
	r.ids = append(r.ids, id)
	return nil
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func withFakeStopper(t *testing.T) *recordingStopper {
	t.Helper()
	rec := &recordingStopper{}
	orig := newStopper
	newStopper = func(context.Context, *config.Config, bool) (compute.InstanceStopper, error) {
		return rec, nil
	}
	t.Cleanup(func() {
		newStopper = orig
		stopCmd.Flags().Set("instance-id", "")
	})
	return rec
}

func TestStopCommand_FlagOverridesEnv(t *testing.T) {
	t.Setenv("INSTANCE_ID", "i-from-env")
	rec := withFakeStopper(t)

	out, err := run(t, "stop", "--instance-id", "i-0abcd1234")
	if err != nil {
		t.Fatalf("stop error: %v", err)
	}
	if len(rec.ids) != 1 || rec.ids[0] != "i-0abcd1234" {
		t.Errorf("expected stop of i-0abcd1234, got %v", rec.ids)
	}

	var res stopper.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if res.StatusCode != 200 || res.Body != "Successfully stopped instance i-0abcd1234" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestStopCommand_MissingInstance(t *testing.T) {
	t.Setenv("INSTANCE_ID", "")
	rec := withFakeStopper(t)

	_, err := run(t, "stop")
	if !errors.Is(err, stopper.ErrMissingInstanceID) {
		t.Fatalf("expected ErrMissingInstanceID, got %v", err)
	}
	if len(rec.ids) != 0 {
		t.Errorf("expected no stop calls, got %v", rec.ids)
	}
}

func TestMessagesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.MessageList{
			Data: []types.Message{{ID: "m1", Text: "hello cloud", Timestamp: "2026-10-16T09:00:00.000Z"}},
		})
	}))
	defer srv.Close()

	out, err := run(t, "messages", "list", "--url", srv.URL)
	if err != nil {
		t.Fatalf("messages list error: %v", err)
	}
	if !strings.Contains(out, "m1") || !strings.Contains(out, "hello cloud") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestMessagesSend(t *testing.T) {
	var got types.MessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.MessageCreated{Item: types.Message{ID: "m2", Text: got.Text}})
	}))
	defer srv.Close()

	out, err := run(t, "messages", "send", "--url", srv.URL, "hello", "there")
	if err != nil {
		t.Fatalf("messages send error: %v", err)
	}
	if got.Text != "hello there" {
		t.Errorf("expected joined text, got %q", got.Text)
	}
	if !strings.Contains(out, "m2") {
		t.Errorf("unexpected output %q", out)
	}
}
