package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/daybreak-app/daybreak-backend/internal/store"
)

// SaveJournalEntryRequest distinguishes a field omitted from the payload from
// an explicit null: omitted fields keep their stored value, null clears it.
type SaveJournalEntryRequest struct {
	Date        string  `json:"date"`
	Reflections *string `json:"reflections"`
	Intentions  *string `json:"intentions"`

	hasReflections bool
	hasIntentions  bool
}

func (req *SaveJournalEntryRequest) UnmarshalJSON(data []byte) error {
	type payload SaveJournalEntryRequest
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, p.hasReflections = fields["reflections"]
	_, p.hasIntentions = fields["intentions"]

	*req = SaveJournalEntryRequest(p)
	return nil
}

// ListJournalEntries returns every journal entry belonging to the
// authenticated user, oldest first. With a ?date=YYYY-MM-DD query it returns
// the single entry for that date instead, or a 404 when none exists.
func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		entry, err := h.store.GetEntryByDate(r.Context(), userID, date)
		if err != nil {
			h.internalError(w, r, err)
			return
		}
		if entry == nil {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeJSON(w, http.StatusOK, entry)
		return
	}

	entries, err := h.store.ListEntries(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// SaveJournalEntry creates or updates the entry for the given calendar date.
// One entry per user per date; a second save for the same date updates it in
// place and advances updatedAt. Fields absent from the payload are preserved.
func (h *Handler) SaveJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SaveJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Date == "" {
		writeError(w, http.StatusBadRequest, "Date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	entry, err := h.store.UpsertEntry(r.Context(), userID, req.Date, store.EntryUpdate{
		Reflections:    req.Reflections,
		SetReflections: req.hasReflections,
		Intentions:     req.Intentions,
		SetIntentions:  req.hasIntentions,
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
