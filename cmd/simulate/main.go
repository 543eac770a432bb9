package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

var (
	header  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	info    = color.New(color.FgYellow)
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func extractData(respBody []byte) map[string]interface{} {
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	_ = json.Unmarshal(respBody, &envelope)
	return envelope.Data
}

func step(name, method, url string, body interface{}) map[string]interface{} {
	header.Printf("\n== %s ==\n", name)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		failure.Printf("request failed: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 300 {
		failure.Printf("HTTP %d\n", resp.StatusCode)
		fmt.Println(string(respBody))
		os.Exit(1)
	}
	success.Printf("HTTP %d\n", resp.StatusCode)
	data := extractData(respBody)
	prettyPrint(data)
	return data
}

func main() {
	header.Println("=== CV Builder Session Journey Simulator ===")

	// 1. Create a session
	data := step("Create session", "POST", "/session/v1", map[string]interface{}{
		"quick_create": false,
		"form_data":    map[string]interface{}{"target_role": "Backend Engineer"},
	})
	sessionId, _ := data["id"].(string)
	if sessionId == "" {
		failure.Println("no session id in response")
		os.Exit(1)
	}
	info.Printf("session: %s\n", sessionId)

	// 2. Walk the first steps of the wizard
	step("Complete upload", "PUT", "/session/v1/"+sessionId+"/step", map[string]interface{}{
		"step":     "upload",
		"progress": map[string]interface{}{"completion": 100},
	})
	step("Advance to processing", "PUT", "/session/v1/"+sessionId+"/step", map[string]interface{}{
		"step": "processing",
	})

	// 3. Go offline and queue some work
	step("Go offline", "PUT", "/queue/v1/connectivity", map[string]interface{}{
		"session_id": sessionId,
		"online":     false,
	})
	step("Queue form save", "POST", "/queue/v1", map[string]interface{}{
		"session_id":       sessionId,
		"type":             "form_save",
		"payload":          map[string]interface{}{"summary": "Seasoned backend engineer"},
		"priority":         "normal",
		"requires_network": true,
	})
	step("Queue feature toggle", "POST", "/queue/v1", map[string]interface{}{
		"session_id":       sessionId,
		"type":             "feature_toggle",
		"payload":          map[string]interface{}{"ats_check": true},
		"priority":         "high",
		"requires_network": true,
	})

	// 4. Reconnect, which triggers the background drain
	step("Reconnect", "PUT", "/queue/v1/connectivity", map[string]interface{}{
		"session_id": sessionId,
		"online":     true,
	})
	info.Println("waiting for sync worker...")
	time.Sleep(2 * time.Second)
	step("Pending after sync", "GET", "/queue/v1/"+sessionId, nil)

	// 5. Inspect navigation
	step("Navigation context", "GET", "/navigation/v1/"+sessionId+"/context", nil)
	step("Back navigation", "POST", "/navigation/v1/"+sessionId+"/back", nil)

	// 6. Persist immediately
	step("Save now", "POST", "/session/v1/"+sessionId+"/save", nil)

	success.Println("\nJourney complete.")
}
