// Package concierge implements the storefront's chat widget: a keyword
// responder and a transcript that receives replies after a fixed delay.
// It shares no state with the search pipeline.
package concierge

import (
	"context"
	"strings"
	"time"
)

// DefaultLatency is the simulated think time before a reply.
const DefaultLatency = 1500 * time.Millisecond

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one transcript entry.
type Message struct {
	ID     int64     `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"message"`
	Time   time.Time `json:"timestamp"`
}

const greeting = "Hello! I'm your travel concierge. I'm here to help you plan your perfect trip. Where would you like to go?"

var replies = []struct {
	keywords []string
	text     string
}{
	{[]string{"hawaii"}, "Hawaii sounds amazing! I can help you find great packages to Maui, Oahu, Kauai, or the Big Island. What time of year are you thinking of traveling?"},
	{[]string{"europe"}, "Europe has so many wonderful destinations! Are you interested in a specific country like Italy, France, Spain, or would you prefer a multi-country tour?"},
	{[]string{"cruise"}, "Cruises are fantastic! We have exclusive deals with Norwegian Cruise Line. What regions interest you - Caribbean, Mediterranean, Alaska, or somewhere else?"},
	{[]string{"budget", "price", "cost"}, "I'd be happy to help you find options within your budget. What's your approximate budget range per person for the trip?"},
	{[]string{"when", "date"}, "Great question! When are you planning to travel? This will help me find the best deals and availability for you."},
}

const fallbackReply = "That sounds interesting! To help you find the perfect travel package, could you tell me more about your preferred destination and travel dates?"

// Greeting returns the message a new transcript opens with.
func Greeting() Message {
	return Message{ID: 1, Sender: SenderAI, Text: greeting, Time: time.Now()}
}

// Respond returns the reply to the latest user message in history. The
// first matching keyword group wins.
func Respond(history []Message) string {
	var last string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == SenderUser {
			last = strings.ToLower(history[i].Text)
			break
		}
	}

	for _, r := range replies {
		for _, k := range r.keywords {
			if strings.Contains(last, k) {
				return r.text
			}
		}
	}
	return fallbackReply
}

// Reply answers message after latency, or returns early when ctx ends.
func Reply(ctx context.Context, latency time.Duration, message string) (string, error) {
	text := Respond([]Message{{Sender: SenderUser, Text: message}})

	timer := time.NewTimer(latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return text, nil
	case <-ctx.Done():
		return "", context.Cause(ctx)
	}
}
