package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// productResponse mirrors the POST /ali/fetch success body.
type productResponse struct {
	Title         *string  `json:"title"`
	PriceOriginal *float64 `json:"priceOriginal"`
	Currency      string   `json:"currency"`
	Images        []string `json:"images"`
	Specs         struct {
		Summary *string `json:"summary"`
	} `json:"specs"`
	FinalURL    string  `json:"finalUrl"`
	Description *string `json:"description"`
	ProductID   string  `json:"productId"`
}

// errorResponse mirrors the error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func handleFetchProduct(client *resty.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		var (
			product productResponse
			apiErr  errorResponse
		)
		resp, err := client.R().
			SetContext(ctx).
			SetBody(map[string]string{"url": url}).
			SetResult(&product).
			SetError(&apiErr).
			Post("/ali/fetch")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		if resp.IsError() {
			if apiErr.Error == "" {
				return mcp.NewToolResultError(fmt.Sprintf("API returned HTTP %d", resp.StatusCode())), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", apiErr.Error, apiErr.Details)), nil
		}

		return mcp.NewToolResultText(formatProduct(&product)), nil
	}
}

// formatProduct renders the product as a short text block.
func formatProduct(p *productResponse) string {
	var sb strings.Builder

	title := "(no title)"
	if p.Title != nil {
		title = *p.Title
	}
	fmt.Fprintf(&sb, "Title: %s\n", title)

	if p.PriceOriginal != nil {
		fmt.Fprintf(&sb, "Price: %.2f %s\n", *p.PriceOriginal, p.Currency)
	} else {
		sb.WriteString("Price: unknown\n")
	}
	if p.ProductID != "" {
		fmt.Fprintf(&sb, "Product ID: %s\n", p.ProductID)
	}
	fmt.Fprintf(&sb, "Source: %s\n", p.FinalURL)

	if p.Description != nil {
		fmt.Fprintf(&sb, "\nDescription: %s\n", *p.Description)
	}
	if p.Specs.Summary != nil {
		fmt.Fprintf(&sb, "\nSpecifications: %s\n", *p.Specs.Summary)
	}
	if len(p.Images) > 0 {
		fmt.Fprintf(&sb, "\nImages (%d):\n", len(p.Images))
		for _, img := range p.Images {
			sb.WriteString(img + "\n")
		}
	}
	return sb.String()
}
