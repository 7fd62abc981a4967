package httpinterface

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/internal/core/application"
	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/pkg/offerwire"
)

// signatureHeader carries the hex encoded owner signature of a removal.
const signatureHeader = "X-Owner-Signature"

type bookHandler struct {
	bookSvc *application.BookService
}

// handleOffers serves the collection routes: listing the book and submitting
// a serialized record.
func (h *bookHandler) handleOffers(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		h.listOffers(w, req)
	case http.MethodPost:
		h.storeOffer(w, req)
	default:
		http.Error(
			w, http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed,
		)
	}
}

// handleOffer serves the per-record routes, keyed by content hash.
func (h *bookHandler) handleOffer(w http.ResponseWriter, req *http.Request) {
	hash := strings.TrimPrefix(req.URL.Path, "/v1/offers/")
	if hash == "" || strings.Contains(hash, "/") {
		http.NotFound(w, req)
		return
	}

	switch req.Method {
	case http.MethodGet:
		h.getOffer(w, req, hash)
	case http.MethodDelete:
		h.removeOffer(w, req, hash)
	default:
		http.Error(
			w, http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed,
		)
	}
}

func (h *bookHandler) listOffers(w http.ResponseWriter, req *http.Request) {
	currencyCode := req.URL.Query().Get("currency")

	entries, err := h.bookSvc.ListEntries(req.Context(), currencyCode)
	if err != nil {
		log.WithError(err).Error("failed to list offer records")
		http.Error(
			w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, newEntryView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *bookHandler) storeOffer(w http.ResponseWriter, req *http.Request) {
	wireBytes, err := ioutil.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	entry, err := h.bookSvc.Store(req.Context(), wireBytes)
	if err != nil {
		if offerwire.IsDecodeError(err) || isDomainError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("failed to store offer record")
		http.Error(
			w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}

	writeJSON(w, http.StatusOK, newEntryView(entry))
}

func (h *bookHandler) getOffer(
	w http.ResponseWriter, req *http.Request, hash string,
) {
	entry, err := h.bookSvc.GetEntry(req.Context(), hash)
	if err != nil {
		if errors.Is(err, application.ErrOfferNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to fetch offer record")
		http.Error(
			w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError,
		)
		return
	}

	writeJSON(w, http.StatusOK, newEntryView(entry))
}

func (h *bookHandler) removeOffer(
	w http.ResponseWriter, req *http.Request, hash string,
) {
	signature, err := hex.DecodeString(req.Header.Get(signatureHeader))
	if err != nil || len(signature) == 0 {
		http.Error(w, "missing or malformed owner signature", http.StatusBadRequest)
		return
	}

	if err := h.bookSvc.Remove(req.Context(), hash, signature); err != nil {
		switch {
		case errors.Is(err, application.ErrOfferNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidSignature),
			errors.Is(err, domain.ErrOfferMissingOwnerPubKey):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, application.ErrOwnerNotReachable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.WithError(err).Error("failed to remove offer record")
			http.Error(
				w, http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError,
			)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func isDomainError(err error) bool {
	for _, domainErr := range []error{
		domain.ErrOfferInvalidId,
		domain.ErrOfferInvalidDirection,
		domain.ErrOfferAmountNotPositive,
		domain.ErrOfferMinAmountNotPositive,
		domain.ErrOfferMinAmountTooHigh,
		domain.ErrOfferAmbiguousPrice,
		domain.ErrOfferMissingChallengeHash,
		domain.ErrOfferMissingAssetCodes,
		domain.ErrOfferMissingOwnerAddress,
		domain.ErrOfferMissingOwnerPubKey,
	} {
		if errors.Is(err, domainErr) {
			return true
		}
	}
	return false
}
