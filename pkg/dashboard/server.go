package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/db"
)

type Dashboard struct {
	store *db.Store
	port  int
}

func New(store *db.Store, port int) *Dashboard {
	return &Dashboard{store: store, port: port}
}

func (d *Dashboard) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/stats", cors(d.handleStats))
	mux.HandleFunc("/api/giveaways", cors(d.handleGiveaways))
	mux.HandleFunc("/api/wins", cors(d.handleWins))
	mux.HandleFunc("/api/tokens", cors(d.handleTokens))
	mux.HandleFunc("/", d.serveFrontend)

	addr := fmt.Sprintf(":%d", d.port)
	log.Info().Str("addr", addr).Msg("🌐 dashboard started")
	return http.ListenAndServe(addr, mux)
}

func cors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, _ := d.store.GetStats()

	participated := stats["participated"]
	winRate := 0.0
	if participated > 0 {
		winRate = float64(stats["wins"]) / float64(participated) * 100
	}

	writeJSON(w, map[string]interface{}{
		"totals":   stats,
		"win_rate": fmt.Sprintf("%.2f%%", winRate),
	})
}

func (d *Dashboard) handleGiveaways(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}
	giveaways, _ := d.store.GetRecentGiveaways(limit)
	writeJSON(w, giveaways)
}

func (d *Dashboard) handleWins(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		days, _ = strconv.Atoi(v)
	}
	wins, _ := d.store.GetRecentWins(time.Now().AddDate(0, 0, -days))
	writeJSON(w, wins)
}

func (d *Dashboard) handleTokens(w http.ResponseWriter, r *http.Request) {
	tokens, _ := d.store.GetTokenStats()
	writeJSON(w, tokens)
}
