package v1_test

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type runResp struct {
	ID       string    `json:"id"`
	Method   string    `json:"method"`
	Status   string    `json:"status"`
	Error    string    `json:"error"`
	Solution [][][]int `json:"solution"`
	Z        float64   `json:"z"`
}

func runBody(method string) string {
	return strings.TrimSuffix(singleAgentBody, "}") + `, "method": "` + method + `"}`
}

func pollRun(t *testing.T, ts *httptest.Server, id string) runResp {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.URL + "/api/v1/schedule/runs/" + id)
		if err != nil {
			t.Fatalf("get run: %v", err)
		}
		var rr runResp
		err = json.NewDecoder(resp.Body).Decode(&rr)
		_ = resp.Body.Close()
		if err != nil {
			t.Fatalf("decode run: %v", err)
		}
		if rr.Status == "succeeded" || rr.Status == "failed" {
			return rr
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("run %s did not finish in time", id)
	return runResp{}
}

func TestEnqueueRunEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSchedule(t, ts, "runs", runBody("greedy"))
	if resp.StatusCode != http.StatusAccepted {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 202, got %d: %s", resp.StatusCode, string(b))
	}
	var queued runResp
	if err := json.NewDecoder(resp.Body).Decode(&queued); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if queued.ID == "" || queued.Method != "greedy" {
		t.Fatalf("unexpected queued run: %+v", queued)
	}

	done := pollRun(t, ts, queued.ID)
	if done.Status != "succeeded" {
		t.Fatalf("run ended %s (error %q), want succeeded", done.Status, done.Error)
	}
	if math.Abs(done.Z-4.0/3.0) > 1e-9 {
		t.Errorf("expected z = 4/3, got %v", done.Z)
	}
	if len(done.Solution) != 2 {
		t.Errorf("unexpected solution shape: %v", done.Solution)
	}
}

func TestEnqueueRunRejectsUnknownMethod(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSchedule(t, ts, "runs", runBody("branch_and_bound"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown method, got %d", resp.StatusCode)
	}
}

func TestEnqueueRunRejectsInvalidInstance(t *testing.T) {
	ts := newTestServer(t, nil)

	body := `{"method": "greedy", "resources": [], "agents": []}`
	resp := postSchedule(t, ts, "runs", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty instance, got %d", resp.StatusCode)
	}
}

func TestGetRunNotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/schedule/runs/no-such-run")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
