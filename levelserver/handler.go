package levelserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/automoto/ledgeline/shared/leveldata"
)

const maxRequestBody = 1 << 20 // 1 MB

type publishResponse struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

// NewMux routes the level API:
//
//	GET  /levels           list of LevelInfo
//	GET  /levels/pool.json pool of every stored level
//	GET  /levels/{name}.json
//	POST /levels?name=...  publish a level document
//	GET  /health
func NewMux(reg *Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /levels", ListLevels(reg))
	mux.HandleFunc("GET /levels/{file}", GetLevel(reg))
	mux.HandleFunc("POST /levels", PublishLevel(reg))
	mux.HandleFunc("GET /health", Health())
	return mux
}

func ListLevels(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(reg.List()); err != nil {
			log.Printf("[levels] list encode error: %v", err)
		}
	}
}

// GetLevel serves one level, or the pool when the file is pool.json. Pool
// refs are relative so clients resolve them against the pool URL.
func GetLevel(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		file := r.PathValue("file")
		if file == "pool.json" {
			var pool leveldata.Pool
			for _, info := range reg.List() {
				pool.Values = append(pool.Values, info.Name+".json")
			}
			if err := json.NewEncoder(w).Encode(pool); err != nil {
				log.Printf("[levels] pool encode error: %v", err)
			}
			return
		}

		name, ok := strings.CutSuffix(file, ".json")
		if !ok {
			http.Error(w, `{"error":"levels are served as .json"}`, http.StatusNotFound)
			return
		}
		l, found := reg.Get(name)
		if !found {
			http.Error(w, `{"error":"unknown level"}`, http.StatusNotFound)
			return
		}
		if err := json.NewEncoder(w).Encode(l); err != nil {
			log.Printf("[levels] level encode error: %v", err)
		}
	}
}

func PublishLevel(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var l leveldata.Level
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		l.Name = r.URL.Query().Get("name")
		if strings.ContainsAny(l.Name, "/.") {
			http.Error(w, `{"error":"invalid name"}`, http.StatusBadRequest)
			return
		}

		name, err := reg.Publish(l)
		if err != nil {
			log.Printf("[levels] rejected level %q: %v", l.Name, err)
			http.Error(w, `{"error":"invalid level"}`, http.StatusUnprocessableEntity)
			return
		}

		log.Printf("[levels] published level %q (%d surfaces)", name, len(l.Surfaces))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(publishResponse{Name: name, Ref: "/levels/" + name + ".json"})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
