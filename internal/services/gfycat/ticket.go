package gfycat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gfyup/internal/logging"
	"gfyup/internal/services"
)

const ticketStage = "ticket"

// Ticket is the upload destination granted by the remote service.
type Ticket struct {
	Name   string `json:"gfyname"`
	Secret string `json:"secret"`
	Error  string `json:"error"`
}

type ticketRequest struct {
	NoMd5 string `json:"noMd5"`
}

// RequestTicket asks the remote service for a fresh upload identifier.
func (c *Client) RequestTicket(ctx context.Context) (Ticket, error) {
	var ticket Ticket

	endpoint, err := c.resourceURL()
	if err != nil {
		return ticket, services.Wrap(services.ErrConfiguration, ticketStage, "build url", "", err)
	}
	payload, err := json.Marshal(ticketRequest{NoMd5: "false"})
	if err != nil {
		return ticket, services.Wrap(services.ErrDecode, ticketStage, "encode body", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ticket, services.Wrap(services.ErrConfiguration, ticketStage, "new request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if _, err := c.doJSON(ctx, c.httpClient, req, ticketStage, &ticket); err != nil {
		return Ticket{}, err
	}

	ticket.Name = strings.TrimSpace(ticket.Name)
	if msg := strings.TrimSpace(ticket.Error); msg != "" {
		return Ticket{}, services.Wrap(services.ErrRejected, ticketStage, "request ticket", msg, nil)
	}
	if ticket.Name == "" {
		return Ticket{}, services.Wrap(services.ErrDecode, ticketStage, "decode response", "missing gfyname", nil)
	}

	logging.WithContext(ctx, c.logger).Debug("ticket granted",
		logging.String(logging.FieldIdentifier, ticket.Name),
	)
	return ticket, nil
}
