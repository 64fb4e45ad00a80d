package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	apiURL := os.Getenv("ALIADAPTER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3000"
	}
	apiKey := os.Getenv("ALIADAPTER_API_KEY")

	s := newServer(newAPIClient(apiURL, apiKey, 60*time.Second))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(client *resty.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"aliadapter",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	fetchProductTool := mcp.NewTool("fetch_product",
		mcp.WithDescription("Fetch an AliExpress product page and return its title, price, currency, images and specification summary. Accepts desktop, mobile and short-link URLs."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The AliExpress product URL"),
		),
	)
	s.AddTool(fetchProductTool, handleFetchProduct(client))

	return s
}

// newAPIClient returns a resty client bound to a running aliadapter
// instance. An empty apiKey sends no credentials.
func newAPIClient(apiURL, apiKey string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return client
}
