package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	return sendJSONStatus(w, http.StatusOK, v)
}

// sendJSONStatus leaves the response untouched if v cannot be marshalled.
func sendJSONStatus(w http.ResponseWriter, code int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"response": v,
			"error":    err,
		}).Error("unable to send response")
	}
}

func sendError(w http.ResponseWriter, log logrus.FieldLogger, code int, err error) {
	if _, werr := sendJSONStatus(w, code, wrapError(err)); werr != nil {
		log.WithFields(logrus.Fields{
			"sent error": err,
			"error":      werr,
		}).Error("failed to send error message")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
