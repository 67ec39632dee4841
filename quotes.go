package main

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

//go:embed quotes.yaml
var quotesYAML []byte

var curatedQuotes = mustLoadQuotes(quotesYAML)

type quoteFile struct {
	Quotes []string `yaml:"quotes"`
}

func loadQuotes(data []byte) ([]string, error) {
	var f quoteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}
	if len(f.Quotes) == 0 {
		return nil, errors.New("parse quotes: empty list")
	}
	return f.Quotes, nil
}

func mustLoadQuotes(data []byte) []string {
	quotes, err := loadQuotes(data)
	if err != nil {
		panic(err)
	}
	return quotes
}

// randomQuote picks uniformly from the curated list.
func randomQuote(rng *rand.Rand) string {
	return curatedQuotes[rng.IntN(len(curatedQuotes))]
}
