package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

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

	client := &http.Client{} // No timeout, LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title, method, url string, body interface{}) map[string]interface{} {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(respBody, &parsed)
	prettyPrint(parsed)
	return parsed
}

func main() {
	color.Cyan("Starting Writing Assistant API Smoke Test\n")

	// 1. Ingest pre-chunked passages
	step("[VECTOR] 1. Ingest JSON passages", "POST", "/vector-ops/v1/ingest-json", []map[string]interface{}{
		{
			"id":       "passage_smoke_1",
			"text":     "The poet kept a notebook of tide tables and train schedules.",
			"metadata": map[string]interface{}{"source": "smoke"},
		},
		{
			"id":       "passage_smoke_2",
			"text":     "Every archive begins as a drawer of loose pages.",
			"metadata": map[string]interface{}{"source": "smoke"},
		},
	})

	// 2. Ingest raw freewriting text (chunked + embedded asynchronously)
	step("[VECTOR] 2. Ingest raw text", "POST", "/vector-ops/v1/ingest-text", map[string]interface{}{
		"text": "This morning I wrote without stopping about the harbor, the gulls, and the way the light came in sideways over the water.",
	})

	// 3. Direct similarity search over passages
	step("[VECTOR] 3. Search passages", "POST", "/vector-ops/v1/search-passages", map[string]interface{}{
		"query": "notebook of schedules",
		"k":     3,
	})

	// 4. Chat turn that should route to the passages branch
	step("[ASSISTANT] 4. Chat (passages route)", "POST", "/assistant/v1/chat", map[string]interface{}{
		"query":       "What do my archived passages say about notebooks?",
		"session_key": "smoke-session",
	})

	// 5. Chat turn with no keyword, exercises memory on the same session
	step("[ASSISTANT] 5. Chat (general route, same session)", "POST", "/assistant/v1/chat", map[string]interface{}{
		"query":       "Thanks. What should I write about next?",
		"session_key": "smoke-session",
	})

	// 6. Linear search over freewriting
	step("[ASSISTANT] 6. Search text", "POST", "/assistant/v1/search-text", map[string]interface{}{
		"query": "the harbor light",
		"k":     2,
	})

	// 7. Entity pipeline
	step("[ASSISTANT] 7. NER search", "POST", "/assistant/v1/ner-search-text", map[string]interface{}{
		"query": "who and where appears in my freewriting",
	})

	color.Cyan("\nSmoke test complete")
}
