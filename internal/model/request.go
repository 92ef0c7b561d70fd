package model

import json "github.com/goccy/go-json"

// Request is one load simulation request: an ordered list of calls, each
// running a scenario some number of times against the target node.
type Request struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Context Context `json:"context"`
	Calls   []Call  `json:"calls"`
}

type Context struct {
	ChainID int64  `json:"chainId"`
	URL     string `json:"url"`
}

// Call keeps its scenario undecoded so a single bad scenario is reported
// against its call instead of failing the whole request.
type Call struct {
	NbOfExecution int             `json:"nbOfExecution"`
	Scenario      json.RawMessage `json:"scenario"`
}
