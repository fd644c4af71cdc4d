package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"hrteam/hr-orchestrator/internal/config"
	"hrteam/hr-orchestrator/internal/services"
)

// Ingests the HR policy document into Qdrant so the policy agent can answer
// from the most relevant sections instead of the whole file.
func main() {
	log.Println("🚀 Starting policy ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ Missing Gemini API key. Please set GEMINI_API_KEY in .env.")
	}
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ Missing Qdrant URL. Please set QDRANT_URL in .env.")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	policyStore, err := services.NewQdrantPolicyStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := policyStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()
	ctx := context.Background()

	path := cfg.Policy.FilePath
	log.Printf("📄 Policy file: %s", path)

	text, err := readPolicyFile(path)
	if err != nil {
		log.Fatalf("❌ Failed to read policy file: %v", err)
	}

	log.Printf("✅ Read %d characters", len(text))

	// Chunk the text
	chunks := chunker.ChunkText(text, 1000, 200)
	log.Printf("✂️ Created %d chunks", len(chunks))

	// Embed and store each chunk
	failCount := 0
	for i, chunk := range chunks {
		embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("❌ Failed to generate embedding for chunk %d: %v", i+1, err)
			failCount++
			continue
		}

		sectionID := fmt.Sprintf("policy_chunk_%d", i)

		if err := policyStore.UpsertSection(ctx, sectionID, chunk, embedding); err != nil {
			log.Printf("❌ Failed to store chunk %d: %v", i+1, err)
			failCount++
			continue
		}

		if (i+1)%5 == 0 || i == len(chunks)-1 {
			log.Printf("📊 Progress: %d/%d chunks stored", i+1, len(chunks))
		}
	}

	if failCount > 0 {
		log.Printf("⚠️ %d chunks failed to ingest. Please check the logs above.", failCount)
		os.Exit(1)
	}

	log.Println("✅ Policy ingested successfully!")
}

func readPolicyFile(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		extractor := services.NewTextExtractor(nil)
		return extractor.ExtractText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
