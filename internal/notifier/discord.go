package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"YieldSentinel/internal/calculator"
	"YieldSentinel/internal/model"
)

// DiscordNotifier sends messages to a Discord webhook endpoint.
type DiscordNotifier struct {
	WebhookURL string
	Username   string
	Client     *http.Client
}

// NewDiscordNotifier creates a notifier with optional proxy support.
func NewDiscordNotifier(webhookURL, username, proxyURL string) *DiscordNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Username:   username,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields"`
	Image  *struct {
		URL string `json:"url"`
	} `json:"image,omitempty"`
}

type discordPayload struct {
	Username string         `json:"username"`
	Content  string         `json:"content,omitempty"`
	Embeds   []discordEmbed `json:"embeds,omitempty"`
}

// SendText sends a plain text message to the webhook.
func (d *DiscordNotifier) SendText(content string) error {
	if d.WebhookURL == "" {
		return fmt.Errorf("webhook URL not configured")
	}
	body, err := json.Marshal(discordPayload{Username: d.Username, Content: content})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := d.Client.Post(d.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	return checkWebhookStatus(resp)
}

// SendWithChart sends an embed message with a PNG chart attached via
// multipart/form-data. The embed references the upload by attachment://
// filename per the webhook's documented format.
func (d *DiscordNotifier) SendWithChart(result *model.ScreeningResult, image []byte, filename string) error {
	if d.WebhookURL == "" {
		return fmt.Errorf("webhook URL not configured")
	}
	if len(image) == 0 {
		return fmt.Errorf("empty chart image")
	}

	embed := discordEmbed{
		Title: fmt.Sprintf("📈 %s - %s", result.Symbol, result.DisplayName),
		Color: 65280,
		Fields: []discordField{
			{Name: "Dividend Yield", Value: fmt.Sprintf("**%.1f%%**", result.Yield), Inline: true},
			{Name: "Current Price", Value: fmt.Sprintf("S$%.2f", result.Price), Inline: true},
		},
	}
	if result.Series != nil {
		if high, low, err := calculator.Calculate52WeekRange(result.Series.Closes()); err == nil {
			embed.Fields = append(embed.Fields, discordField{
				Name:   "52w Range",
				Value:  fmt.Sprintf("S$%.2f - S$%.2f", low, high),
				Inline: true,
			})
		}
	}
	embed.Image = &struct {
		URL string `json:"url"`
	}{URL: "attachment://" + filename}

	payload, err := json.Marshal(discordPayload{Username: d.Username, Embeds: []discordEmbed{embed}})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	if err := w.WriteField("payload_json", string(payload)); err != nil {
		return fmt.Errorf("write payload field: %w", err)
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := d.Client.Post(d.WebhookURL, w.FormDataContentType(), &form)
	if err != nil {
		return fmt.Errorf("send chart message: %w", err)
	}
	defer resp.Body.Close()
	return checkWebhookStatus(resp)
}

func checkWebhookStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	respBody, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("discord webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
}
