package models

import (
	"encoding/json"
	"testing"
)

func TestSentimentLabelValid(t *testing.T) {
	for _, l := range []SentimentLabel{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentVolatile} {
		if !l.Valid() {
			t.Errorf("expected %q to be valid", l)
		}
	}
	if SentimentLabel("Bullish").Valid() {
		t.Error("expected unknown label to be invalid")
	}
	if SentimentLabel("").Valid() {
		t.Error("expected empty label to be invalid")
	}
}

func TestNewsItemText(t *testing.T) {
	n := NewsItem{Title: "Apple beats estimates", Summary: "Revenue grew 12%"}
	if got := n.Text(); got != "Apple beats estimates Revenue grew 12%" {
		t.Errorf("unexpected text: %q", got)
	}

	n.Summary = ""
	if got := n.Text(); got != "Apple beats estimates" {
		t.Errorf("expected title only, got %q", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampSigned(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-2, -1},
		{-1, -1},
		{0.33, 0.33},
		{1, 1},
		{5, 1},
	}
	for _, tt := range tests {
		if got := ClampSigned(tt.in); got != tt.want {
			t.Errorf("ClampSigned(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnalysisResultJSONFields(t *testing.T) {
	res := AnalysisResult{
		Symbol:           "AAPL",
		CompanyName:      "Apple Inc.",
		NewsCount:        2,
		OverallSentiment: SentimentPositive,
		Confidence:       0.8,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"symbol", "company_name", "news_count", "overall_sentiment", "confidence", "price_change_percent"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected JSON key %q", key)
		}
	}
}
