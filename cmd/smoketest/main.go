package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

// Smoke test against a running instance: walks one session through the
// happy path (create -> document -> liveness -> match -> ready for review)
// using only the public API.

var baseURL = envOr("SMOKE_BASE_URL", "http://localhost:3000")

func main() {
	client := &http.Client{Timeout: 10 * time.Second}

	color.Cyan("== KYC engine smoke test (%s) ==", baseURL)

	// 1. Health
	checkStatus(client, "GET", "/health", nil, http.StatusOK, "health check")

	// 2. Create session
	body := post(client, "/api/kyc/v1/sessions", map[string]interface{}{
		"external_user_id": fmt.Sprintf("smoke-%d", time.Now().Unix()),
	}, http.StatusCreated, "create session")

	sessionId := int(dig(body, "data", "id").(float64))
	color.Green("   session id: %d", sessionId)

	// 3. Add a document reference
	post(client, fmt.Sprintf("/api/kyc/v1/sessions/%d/documents", sessionId), map[string]interface{}{
		"type":     "PASSPORT",
		"file_key": "smoke/doc.jpg",
	}, http.StatusCreated, "add document")

	// 4. Set liveness
	put(client, fmt.Sprintf("/api/kyc/v1/sessions/%d/liveness", sessionId), map[string]interface{}{
		"video_key": "smoke/liveness.mp4",
	}, "set liveness")

	// 5. Record an externally computed match
	put(client, fmt.Sprintf("/api/kyc/v1/sessions/%d/match", sessionId), map[string]interface{}{
		"match_score":   0.82,
		"match_percent": 91,
	}, "upsert match result")

	// 6. Verify status progressed to READY_FOR_REVIEW
	detail := get(client, fmt.Sprintf("/api/kyc/v1/sessions/%d", sessionId), "show session")
	status := dig(detail, "data", "status").(string)
	if status != "READY_FOR_REVIEW" {
		color.Red("FAIL: expected READY_FOR_REVIEW, got %s", status)
		os.Exit(1)
	}
	color.Green("   status: %s", status)

	color.Cyan("== All smoke checks passed ==")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func post(client *http.Client, path string, payload map[string]interface{}, wantStatus int, label string) map[string]interface{} {
	return request(client, "POST", path, payload, wantStatus, label)
}

func put(client *http.Client, path string, payload map[string]interface{}, label string) map[string]interface{} {
	return request(client, "PUT", path, payload, http.StatusOK, label)
}

func get(client *http.Client, path string, label string) map[string]interface{} {
	return request(client, "GET", path, nil, http.StatusOK, label)
}

func checkStatus(client *http.Client, method, path string, payload map[string]interface{}, wantStatus int, label string) {
	request(client, method, path, payload, wantStatus, label)
}

func request(client *http.Client, method, path string, payload map[string]interface{}, wantStatus int, label string) map[string]interface{} {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		data, _ := json.Marshal(payload)
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		color.Red("FAIL: %s: %v", label, err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		color.Red("FAIL: %s: %v", label, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != wantStatus {
		color.Red("FAIL: %s: status %d (want %d): %v", label, resp.StatusCode, wantStatus, body)
		os.Exit(1)
	}

	color.Green("OK  %s", label)
	return body
}

func dig(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, k := range keys {
		mm, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}
