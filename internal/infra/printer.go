package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PrintJob is sent to the printer agent, the small sidecar that owns the
// thermal printer attached to the checkout station.
type PrintJob struct {
	TransacaoID string `json:"transacao_id"`
	Conteudo    string `json:"conteudo"` // plain text, one receipt line per \n
	Copias      int    `json:"copias"`
}

// PrintResult is the agent's acknowledgement.
type PrintResult struct {
	Status   string `json:"status"` // "ok" | "erro"
	Mensagem string `json:"mensagem,omitempty"`
}

// PrinterClient talks to the printer agent over HTTP. Keeping the printer
// behind a sidecar isolates USB/driver failures from the backend process.
type PrinterClient struct {
	agentURL   string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewPrinterClient(agentURL string, cb *CircuitBreaker) *PrinterClient {
	return &PrinterClient{
		agentURL:   agentURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// Imprimir posts a receipt to the agent. Calls are routed through the circuit
// breaker: with the agent down, enqueued receipts fail fast instead of each
// burning a full HTTP timeout.
func (c *PrinterClient) Imprimir(ctx context.Context, job PrintJob) (*PrintResult, error) {
	if job.Copias < 1 {
		job.Copias = 1
	}

	var result *PrintResult
	err := c.cb.Execute(func() error {
		r, err := c.post(ctx, job)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Estado exposes the breaker state for the health endpoint.
func (c *PrinterClient) Estado() string {
	return c.cb.State().String()
}

func (c *PrinterClient) post(ctx context.Context, job PrintJob) (*PrintResult, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("printer: marshal job: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.agentURL+"/imprimir", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("printer: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("printer: agent unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("printer: agent returned %d", resp.StatusCode)
	}

	var result PrintResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("printer: decode response: %w", err)
	}
	if result.Status != "ok" {
		return &result, fmt.Errorf("printer: agent rejected job: %s", result.Mensagem)
	}
	return &result, nil
}
