// Package bookclient is a thin HTTP client for the offer book API exposed by
// the daemon. Makers use it to publish their records to the storing nodes
// they know about, takers to browse a node's view of the book.
package bookclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const signatureHeader = "X-Owner-Signature"

// OfferView mirrors the offer fields returned by the daemon.
type OfferView struct {
	Id                  string  `json:"id"`
	CreatedAt           int64   `json:"createdAt"`
	OwnerAddress        string  `json:"ownerAddress"`
	Direction           string  `json:"direction"`
	Price               uint64  `json:"price"`
	MarketPriceMargin   float64 `json:"marketPriceMargin"`
	UseMarketBasedPrice bool    `json:"useMarketBasedPrice"`
	Amount              uint64  `json:"amount"`
	MinAmount           uint64  `json:"minAmount"`
	BaseCurrencyCode    string  `json:"baseCurrencyCode"`
	CounterCurrencyCode string  `json:"counterCurrencyCode"`
	CurrencyCode        string  `json:"currencyCode"`
	PaymentMethodId     string  `json:"paymentMethodId"`
	IsPrivateOffer      bool    `json:"isPrivateOffer"`
	Record              string  `json:"record"`
}

// EntryView mirrors a book entry returned by the daemon.
type EntryView struct {
	Hash      string    `json:"hash"`
	StoredAt  int64     `json:"storedAt"`
	ExpiresAt int64     `json:"expiresAt"`
	Offer     OfferView `json:"offer"`
}

// Client talks to a single storing node.
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

// NewClient returns a client for the node at the given base url, e.g.
// http://localhost:9945.
func NewClient(baseUrl string, timeout time.Duration) *Client {
	return &Client{
		baseUrl:    baseUrl,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Store submits the serialized record to the node's book.
func (c *Client) Store(ctx context.Context, wireBytes []byte) (*EntryView, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseUrl+"/v1/offers", bytes.NewReader(wireBytes),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var entry EntryView
	if err := c.do(req, http.StatusOK, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the node's view of the book, optionally filtered by the
// offer's non-primary asset code.
func (c *Client) List(ctx context.Context, currencyCode string) ([]EntryView, error) {
	url := c.baseUrl + "/v1/offers"
	if currencyCode != "" {
		url += "?currency=" + currencyCode
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var entries []EntryView
	if err := c.do(req, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns the entry with the given content hash.
func (c *Client) Get(ctx context.Context, hash string) (*EntryView, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseUrl+"/v1/offers/"+hash, nil,
	)
	if err != nil {
		return nil, err
	}

	var entry EntryView
	if err := c.do(req, http.StatusOK, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove asks the node to evict the record with the given content hash on
// behalf of its owner.
func (c *Client) Remove(ctx context.Context, hash string, signature []byte) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.baseUrl+"/v1/offers/"+hash, nil,
	)
	if err != nil {
		return err
	}
	req.Header.Set(signatureHeader, hex.EncodeToString(signature))

	return c.do(req, http.StatusNoContent, nil)
}

func (c *Client) do(req *http.Request, wantStatus int, body interface{}) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		msg, _ := ioutil.ReadAll(res.Body)
		return fmt.Errorf("%s: %s", res.Status, bytes.TrimSpace(msg))
	}
	if body == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(body)
}

// StoreToMany publishes the serialized record to every given node
// concurrently and fails if any of them refused it.
func StoreToMany(
	ctx context.Context, baseUrls []string, wireBytes []byte, timeout time.Duration,
) error {
	eg := &errgroup.Group{}
	for i := range baseUrls {
		url := baseUrls[i]
		eg.Go(func() error {
			client := NewClient(url, timeout)
			if _, err := client.Store(ctx, wireBytes); err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
