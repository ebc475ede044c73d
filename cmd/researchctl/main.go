package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Global flags
	serverURL string
	timeout   int

	// Research command flags
	query string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "researchctl",
	Short:   "Client for the company research service",
	Version: version,
}

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Research a company and answer a question about it",
	Long: `Research a company and answer a question about it.

The server searches the web across several categories, embeds the
findings, and answers the question from the retrieved context.

Examples:
  # Ask the default question
  researchctl research "Acme Corp"

  # Ask a specific question
  researchctl research "Acme Corp" --query "What is the company culture like?"

  # Talk to a remote server
  researchctl research "Acme Corp" --server http://research.internal:8000`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE:  checkHealth,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "server base URL")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 180, "request timeout in seconds")

	researchCmd.Flags().StringVarP(&query, "query", "q", "Tell me about this company.", "question to answer")

	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(healthCmd)
}

type researchResponse struct {
	Status         string  `json:"status"`
	Company        string  `json:"company"`
	Query          string  `json:"query"`
	Answer         string  `json:"answer"`
	SourcesFound   int     `json:"sources_found"`
	ChunksEmbedded int     `json:"chunks_embedded"`
	ExecutionTimeS float64 `json:"execution_time_s"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func runResearch(cmd *cobra.Command, args []string) error {
	company := strings.TrimSpace(args[0])
	if company == "" {
		return fmt.Errorf("company must not be empty")
	}

	payload, err := json.Marshal(map[string]string{
		"company_name": company,
		"query":        query,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	resp, err := client.Post(serverURL+"/research", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Detail != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errBody.Detail)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var result researchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	fmt.Printf("Company:  %s\n", result.Company)
	fmt.Printf("Question: %s\n\n", result.Query)
	fmt.Println(result.Answer)
	fmt.Printf("\nSources: %d  Chunks: %d  Took: %.1fs\n",
		result.SourcesFound, result.ChunksEmbedded, result.ExecutionTimeS)
	return nil
}

func checkHealth(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	fmt.Println("ok")
	return nil
}
