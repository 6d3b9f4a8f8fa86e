package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// Registers a session for a user against a running engine and prints the
// session id. The token must come from the identity service; this tool only
// forwards it.
func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/session-token/main.go <engine-url> <user-id> <token>")
		fmt.Println("Example: go run cmd/session-token/main.go http://localhost:8080 6650f1a2 eyJhbGci...")
		os.Exit(1)
	}

	engineURL := os.Args[1]
	userID := os.Args[2]
	token := os.Args[3]

	payload, err := json.Marshal(map[string]string{
		"user_id": userID,
		"token":   token,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build request: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(engineURL+"/v1/sessions", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reach engine: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var out struct {
		SessionID string `json:"session_id"`
		UserID    string `json:"user_id"`
		Error     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusCreated {
		fmt.Fprintf(os.Stderr, "Engine rejected the session: %s\n", out.Error)
		os.Exit(1)
	}

	fmt.Printf("Session created for user %s\n", out.UserID)
	fmt.Printf("Session ID: %s\n", out.SessionID)
	fmt.Printf("\nAuthenticate requests with the same token:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
