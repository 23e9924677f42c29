package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// decodeJSON parses a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	// A second value means trailing garbage after the document
	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
