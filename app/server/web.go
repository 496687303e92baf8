package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/app/models"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/config"
)

// JSONError is json error massage
type JSONError struct {
	Error string `json:"error"`
}

func errorAPI(w http.ResponseWriter, message string, code int) {
	jsonMessage, err := json.Marshal(JSONError{Error: message})
	if err != nil {
		logrus.Warnf("error message create error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(jsonMessage)
}

// RunsAPIHandler lists stored planning runs,
// when path is "/runs"
func RunsAPIHandler(w http.ResponseWriter, req *http.Request) {
	logrus.Infof("runs request: url -> %s", req.URL)

	limit := 20
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errorAPI(w, "bad parameter(limit)", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	js, err := json.Marshal(models.GetRunsFrame(limit))
	if err != nil {
		logrus.Warnf("runs json error: %v", err)
		errorAPI(w, "runs json error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// MovesAPIHandler returns one run with its move sequence,
// when path is "/moves"
func MovesAPIHandler(w http.ResponseWriter, req *http.Request) {
	logrus.Infof("moves request: url -> %s", req.URL)

	runID, err := strconv.Atoi(req.URL.Query().Get("id"))
	if err != nil {
		errorAPI(w, "bad parameter(id)", http.StatusBadRequest)
		return
	}

	rframe := models.GetRunFrame(runID)
	if rframe.Run == nil {
		errorAPI(w, fmt.Sprintf("no run with id: %d", runID), http.StatusBadRequest)
		return
	}

	js, err := json.Marshal(rframe)
	if err != nil {
		logrus.Warnf("moves json error: %v", err)
		errorAPI(w, "moves json error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// Run starts webserver
func Run() {
	logrus.Info("server start")
	http.HandleFunc("/runs", RunsAPIHandler)
	http.HandleFunc("/moves", MovesAPIHandler)
	logrus.Fatalln(http.ListenAndServe(
		fmt.Sprintf("%s:%d", config.Config.IP, config.Config.Port), nil))
}
