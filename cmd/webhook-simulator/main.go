// Command webhook-simulator sends a canned WhatsApp message notification to
// a locally running relay, for manual testing without a Meta subscription.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
)

const notificationTemplate = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "0",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "metadata": {"display_phone_number": "15550000000", "phone_number_id": "0"},
        "contacts": [{"profile": {"name": "%s"}, "wa_id": "%s"}],
        "messages": [{
          "from": "%s",
          "id": "wamid.simulated",
          "timestamp": "0",
          "type": "text",
          "text": {"body": "%s"}
        }]
      }
    }]
  }]
}`

func main() {
	target := flag.String("target", "http://localhost:3000/api/webhook", "relay webhook endpoint")
	from := flag.String("from", "15551234567", "sender wa_id")
	name := flag.String("name", "Simulator", "sender display name")
	text := flag.String("text", "hello", "message text")
	flag.Parse()

	payload := fmt.Sprintf(notificationTemplate, *name, *from, *from, *text)
	resp, err := http.Post(*target, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		log.Fatalf("failed to POST notification: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	log.Printf("relay answered %d: %s", resp.StatusCode, body)
}
