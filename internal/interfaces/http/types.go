package httpinterface

import (
	"encoding/hex"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

type offerView struct {
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
	// Record is the hex of the record's canonical serialization, ready to be
	// gossiped further.
	Record string `json:"record"`
}

type entryView struct {
	Hash      string    `json:"hash"`
	StoredAt  int64     `json:"storedAt"`
	ExpiresAt int64     `json:"expiresAt"`
	Offer     offerView `json:"offer"`
}

func newEntryView(entry *domain.BookEntry) entryView {
	offer := entry.Offer

	record := ""
	if wireBytes, err := offer.Serialize(); err == nil {
		record = hex.EncodeToString(wireBytes)
	}

	return entryView{
		Hash:      entry.Hash,
		StoredAt:  entry.StoredAt,
		ExpiresAt: entry.ExpiresAt,
		Offer: offerView{
			Id:                  offer.Id,
			CreatedAt:           offer.CreatedAt,
			OwnerAddress:        offer.OwnerAddress().String(),
			Direction:           offer.Direction.String(),
			Price:               offer.Price,
			MarketPriceMargin:   offer.MarketPriceMargin,
			UseMarketBasedPrice: offer.UseMarketBasedPrice,
			Amount:              offer.Amount,
			MinAmount:           offer.MinAmount,
			BaseCurrencyCode:    offer.BaseCurrencyCode,
			CounterCurrencyCode: offer.CounterCurrencyCode,
			CurrencyCode:        offer.CurrencyCode(),
			PaymentMethodId:     offer.PaymentMethodId,
			IsPrivateOffer:      offer.IsPrivateOffer,
			Record:              record,
		},
	}
}
